// Package pricing suggests resale prices from comparable sales.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Suggestion is a suggested resale price.
type Suggestion struct {
	Query       string          `json:"query"`
	Price       decimal.Decimal `json:"price"` // median of the comparables
	Low         decimal.Decimal `json:"low"`
	High        decimal.Decimal `json:"high"`
	Comparables int             `json:"comparables"`
	Cached      bool            `json:"-"`
}

// Suggester suggests prices from a Source, caching suggestions in Cache for TTL.
// Cache and Logger are optional.
type Suggester struct {
	Source Source
	Cache  Store
	TTL    time.Duration
	Logger *zap.Logger
}

func (s *Suggester) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Suggest returns the median price of the comparables of query. A cache
// failure is logged and the source is used instead.
func (s *Suggester) Suggest(ctx context.Context, query string) (Suggestion, error) {
	key := "suggest:" + Key(query)
	if key == "suggest:" {
		return Suggestion{}, errors.New("empty query")
	}
	log := s.logger().With(zap.String("query", query))

	if s.Cache != nil {
		b, found, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn("price cache get failed", zap.Error(err))
		case found:
			var cached Suggestion
			if err := json.Unmarshal(b, &cached); err == nil {
				log.Debug("price cache hit")
				cached.Cached = true
				return cached, nil
			}
			log.Warn("dropping invalid cached suggestion")
		default:
			log.Debug("price cache miss")
		}
	}

	if s.Source == nil {
		return Suggestion{}, errors.New("no price source configured")
	}
	prices, err := s.Source.Comparables(ctx, query)
	if err != nil {
		return Suggestion{}, err
	}
	if len(prices) == 0 {
		return Suggestion{}, fmt.Errorf("%w for %q", ErrNoComparables, query)
	}
	sug := summarize(query, prices)

	if s.Cache != nil {
		b, err := json.Marshal(sug)
		if err == nil {
			err = s.Cache.Set(ctx, key, b, s.TTL)
		}
		if err != nil {
			log.Warn("price cache set failed", zap.Error(err))
		}
	}
	log.Info("price suggested", zap.Stringer("price", sug.Price), zap.Int("comparables", sug.Comparables))
	return sug, nil
}

func summarize(query string, prices []decimal.Decimal) Suggestion {
	sorted := slices.Clone(prices)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	return Suggestion{
		Query:       query,
		Price:       Median(sorted),
		Low:         sorted[0],
		High:        sorted[len(sorted)-1],
		Comparables: len(sorted),
	}
}

// Median returns the median of sorted prices, rounded to cents. The median of
// an even count is the mean of the two middle prices.
func Median(sorted []decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n%2 == 1 {
		return sorted[n/2].Round(2)
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2)).Round(2)
}
