package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	SubDataFile        = "sub_data.json"
	IngredientDataFile = "ingredient_data.json"
	TipsFile           = "site_tips.json"
	ConfigFile         = "sorting_config.json"
)

var ErrCatalogUnavailable = errors.New("sub catalog unavailable")

// Source opens one of the static data documents. bust asks for a fresh copy
// where the source caches.
type Source interface {
	Open(ctx context.Context, name string, bust bool) (io.ReadCloser, error)
}

// DirSource reads documents from a local directory.
type DirSource struct{ Dir string }

func (s DirSource) Open(_ context.Context, name string, _ bool) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.Dir, name))
}

// HTTPSource fetches documents below a base URL, one attempt each.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

func (s HTTPSource) Open(ctx context.Context, name string, bust bool) (io.ReadCloser, error) {
	u, err := url.Parse(strings.TrimSuffix(s.BaseURL, "/") + "/" + name)
	if err != nil {
		return nil, err
	}
	if bust {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		q := u.Query()
		q.Set("t", strconv.FormatInt(now().UnixMilli(), 10))
		u.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to load %s: %d", name, resp.StatusCode)
	}
	return resp.Body, nil
}

// Data is everything the views and the quiz engine consume.
type Data struct {
	Subs        SubCatalog        `json:"subs"`
	Ingredients IngredientCatalog `json:"ingredients"`
	Tips        []Tip             `json:"tips"`
	Config      DisplayConfig     `json:"config"`
	Warning     string            `json:"warning,omitempty"`
	LoadedAt    time.Time         `json:"loaded_at"`
}

type Loader struct {
	Source Source
	// SampleFallback substitutes SampleCatalog when the sub catalog fails.
	SampleFallback bool
	Logger         *log.Logger
}

func NewLoader(src Source, sampleFallback bool, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Loader{Source: src, SampleFallback: sampleFallback, Logger: logger}
}

// Load reads all four documents. Only a sub catalog failure is returned as an
// error; the other documents fall back to built-in defaults.
func (l *Loader) Load(ctx context.Context) (Data, error) {
	d := Data{LoadedAt: time.Now()}

	subs, err := l.LoadSubs(ctx)
	if err != nil {
		if !l.SampleFallback {
			return Data{}, err
		}
		l.Logger.Printf("error loading sub data: %v", err)
		subs = SampleCatalog()
		d.Warning = "Failed to load " + SubDataFile + "! Loading sample data instead."
	}
	d.Subs = subs
	d.Ingredients = l.LoadIngredients(ctx)
	d.Tips = l.LoadTips(ctx)
	d.Config = l.LoadConfig(ctx)
	return d, nil
}

func (l *Loader) LoadSubs(ctx context.Context) (SubCatalog, error) {
	var c SubCatalog
	if err := l.decode(ctx, SubDataFile, true, &c); err != nil {
		return SubCatalog{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return c, nil
}

func (l *Loader) LoadIngredients(ctx context.Context) IngredientCatalog {
	var c IngredientCatalog
	if err := l.decode(ctx, IngredientDataFile, true, &c); err != nil {
		l.Logger.Printf("error loading ingredient data: %v", err)
		return IngredientCatalog{}
	}
	if c == nil {
		c = IngredientCatalog{}
	}
	return c
}

func (l *Loader) LoadTips(ctx context.Context) []Tip {
	var tips []Tip
	if err := l.decode(ctx, TipsFile, true, &tips); err != nil {
		l.Logger.Printf("error loading site tips: %v", err)
		return GeneralTips()
	}
	return tips
}

// LoadConfig overlays the document onto the defaults, so absent fields keep
// their default values.
func (l *Loader) LoadConfig(ctx context.Context) DisplayConfig {
	cfg := DefaultDisplayConfig()
	if err := l.decode(ctx, ConfigFile, false, &cfg); err != nil {
		l.Logger.Printf("error loading sorting config: %v", err)
		return DefaultDisplayConfig()
	}
	return cfg
}

func (l *Loader) decode(ctx context.Context, name string, bust bool, v any) error {
	rc, err := l.Source.Open(ctx, name, bust)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
