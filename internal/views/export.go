package views

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/subtrainer/subtrainer/internal/catalog"
)

const (
	SheetSubs        = "Subs"
	SheetIngredients = "Ingredients"
)

// WriteStudySheet writes an XLSX workbook with one row per sub and one row
// per ingredient group.
func WriteStudySheet(w io.Writer, subs catalog.SubCatalog, groups []catalog.IngredientGroup) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSubs); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetIngredients); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetSubs)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{"category", "number", "name", "ingredients", "tip"}); err != nil {
		return err
	}
	row := 2
	for _, cat := range subs.Categories() {
		for _, s := range subs.Subs(cat) {
			num, _ := s.Number()
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := sw.SetRow(cell, []interface{}{
				cat, num, s.DisplayName(), strings.Join(s.Ingredients, ", "), s.Tip,
			}); err != nil {
				return err
			}
			row++
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	sw, err = f.NewStreamWriter(SheetIngredients)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{"ingredient", "category", "lto", "variants"}); err != nil {
		return err
	}
	for i, g := range catalog.FilterGroups(groups, catalog.CategoryAll, false) {
		lto := ""
		if g.IsLTO {
			lto = "yes"
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{g.BaseName, g.Category, lto, strings.Join(g.Variants, ", ")}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
