// Package trains aggregates the two independent train listing sources
// into one deduplicated, departure-sorted list.
package trains

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

// missingDeparture sorts trains without a departure time last.
const missingDeparture = "99:99"

// Lister is a single train listing source.
type Lister interface {
	TrainsBetween(ctx context.Context, from, to string) ([]models.Train, error)
}

// Aggregator combines two listing sources. When both list the same
// train number, the primary source's record wins entirely.
type Aggregator struct {
	primary   Lister
	secondary Lister
}

// NewAggregator creates a listing aggregator. primary takes precedence
// on duplicate train numbers.
func NewAggregator(primary, secondary Lister) *Aggregator {
	return &Aggregator{primary: primary, secondary: secondary}
}

// Search lists trains between two station codes. Both sources are
// queried concurrently; a failed source contributes an empty list and
// never aborts the other. Listings are best-effort: this method never
// fails, at worst it returns an empty list.
func (a *Aggregator) Search(ctx context.Context, from, to string) []models.Train {
	var (
		wg         sync.WaitGroup
		primary    []models.Train
		secondary  []models.Train
		primaryErr error
		secondErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		primary, primaryErr = a.primary.TrainsBetween(ctx, from, to)
	}()
	go func() {
		defer wg.Done()
		secondary, secondErr = a.secondary.TrainsBetween(ctx, from, to)
	}()
	wg.Wait()

	if primaryErr != nil {
		log.Printf("trains: primary listing source failed for %s-%s: %v", from, to, primaryErr)
		primary = nil
	}
	if secondErr != nil {
		log.Printf("trains: secondary listing source failed for %s-%s: %v", from, to, secondErr)
		secondary = nil
	}

	seen := make(map[string]bool, len(primary))
	merged := []models.Train{}
	for _, t := range primary {
		if seen[t.Number] {
			continue
		}
		seen[t.Number] = true
		merged = append(merged, t)
	}
	for _, t := range secondary {
		if seen[t.Number] {
			continue
		}
		seen[t.Number] = true
		merged = append(merged, t)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return departureKey(merged[i]) < departureKey(merged[j])
	})

	return merged
}

func departureKey(t models.Train) string {
	if t.From.Departure == "" {
		return missingDeparture
	}
	return t.From.Departure
}
