package catalog

// IngredientCategories drives the ingredient browser filter.
var IngredientCategories = []string{"All", "Wraps", "Meats", "Cheese", "Veggies", "Condiments", "LTO"}

const (
	CategoryAll = "All"
	CategoryLTO = "LTO"
)

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		SortMode:            "category",
		IngredientImageSize: 64,
		UITextSize:          20,
		IngredientTextSize:  15,
		TipIcon:             "💡",
	}
}

func GeneralTips() []Tip {
	return []Tip{
		PlainTip("Remember to wash your hands and maintain a clean workstation!"),
		PlainTip("Always verify bread freshness before building any sub."),
		PlainTip("Keep cold ingredients chilled properly and meats safely stored."),
		PlainTip("Knife skills matter: precise slicing helps presentation."),
		PlainTip("Practice safe temperatures for cooked and toasted subs."),
	}
}

// SampleCatalog is served when the sub catalog cannot be loaded and the
// sample fallback is enabled.
func SampleCatalog() SubCatalog {
	return NewSubCatalog(
		Category{Name: "Originals", Subs: []Sub{
			{Name: "#1 The Pepe", Ingredients: []string{"Ham", "Provolone Cheese", "Lettuce", "Tomato", "Mayo"},
				Tip: "Wrap sub neatly and keep ham slices folded.", Image: "subs/Pepe.png"},
			{Name: "#2 Big John", Ingredients: []string{"Roast Beef", "Lettuce", "Tomato", "Mayo"},
				Tip: "Roast beef must be sliced fresh daily for best taste.", Image: "subs/BigJohn.png"},
			{Name: "#3 Totally Tuna", Ingredients: []string{"Tuna Salad", "Lettuce", "Tomato", "Cucumber"},
				Tip: "Drain tuna well to avoid soggy bread.", Image: "subs/TotallyTuna.png"},
		}},
		Category{Name: "Favorites", Subs: []Sub{
			{Name: "#7 Spicy East Coast Italian", Ingredients: []string{"Vito (Double)", "Provolone Cheese", "Jimmy Peppers", "Onion", "Mayo", "Oil & Vinegar", "Oregano-Basil", "Lettuce", "Tomato"},
				Tip: "Jimmy Peppers first so they blend with the meat flavors.", Image: "subs/SpicyItalian.png"},
			{Name: "#8 Billy Club", Ingredients: []string{"Roast Beef", "Ham", "Provolone Cheese", "Yellow Mustard", "Lettuce", "Tomato", "Mayo"},
				Tip: "Yellow mustard goes lightly so as not to overpower.", Image: "subs/BillyClub.png"},
		}},
	)
}
