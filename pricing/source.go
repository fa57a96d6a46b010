package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// ErrNoComparables is returned when a source knows no comparable sale for a query.
var ErrNoComparables = errors.New("no comparable sales")

// Source returns the prices of comparable sales for a query.
type Source interface {
	Comparables(ctx context.Context, query string) ([]decimal.Decimal, error)
}

// DefaultPricePath selects item prices in a marketplace search response.
const DefaultPricePath = "$.itemSummaries[*].price.value"

// FileSource reads saved marketplace search responses from Dir, one JSON
// file per query named after Key(query).
type FileSource struct {
	Dir  string
	Path string // jsonpath of the prices, DefaultPricePath if empty
}

func (s FileSource) Comparables(ctx context.Context, query string) ([]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := filepath.Join(s.Dir, Key(query)+".json")
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w for %q", ErrNoComparables, query)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read comparables %q: %w", file, err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("could not decode comparables %q: %w", file, err)
	}
	path := s.Path
	if path == "" {
		path = DefaultPricePath
	}
	prices, err := extractPrices(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", file, err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoComparables, query)
	}
	return prices, nil
}

// extractPrices evaluates path on jobj. Marketplaces write prices as numbers
// or as strings.
func extractPrices(path string, jobj any) ([]decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	// a path can select a single value or a list of them
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}
	prices := make([]decimal.Decimal, 0, len(jlist))
	for _, v := range jlist {
		switch v := v.(type) {
		case float64:
			prices = append(prices, decimal.NewFromFloat(v))
		case string:
			d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", "."))
			if err != nil {
				return nil, fmt.Errorf("invalid price %q: %w", v, err)
			}
			prices = append(prices, d)
		case nil:
		default:
			return nil, fmt.Errorf("invalid price %v of type %T", v, v)
		}
	}
	return prices, nil
}

// Key normalizes a query into a file and cache key: lower case words joined by dashes.
func Key(query string) string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-")
}
