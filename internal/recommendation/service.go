// Package recommendation suggests storefront products from historical order
// co-purchase patterns, falling back to same-category or random picks when
// the order history carries no signal.
package recommendation

import (
	"context"
	"math/rand"
	"sort"

	"github.com/zid-upsell/backend/internal/product"
)

// maxResults caps every recommendation response.
const maxResults = 5

// Service answers recommendation queries against the current snapshot. It
// never returns errors: missing data degrades to shorter or empty results
// because recommendations are supplementary, not critical path.
type Service struct {
	manager *Manager
}

func NewService(m *Manager) *Service {
	return &Service{manager: m}
}

// ForProduct recommends up to 5 products for a single viewed product, ranked
// by how often they were bought together with it.
func (s *Service) ForProduct(ctx context.Context, productID int) []product.Card {
	cards := make([]product.Card, 0, maxResults)
	if productID == 0 {
		return cards
	}
	snap := s.manager.Snapshot(ctx)
	if _, ok := snap.Products[productID]; !ok {
		return cards
	}

	for _, cand := range rank(snap.Matrix.Row(productID)) {
		if cand.id == productID {
			continue
		}
		p, ok := snap.Products[cand.id]
		if !ok {
			continue
		}
		cards = append(cards, p.Card())
		if len(cards) == maxResults {
			break
		}
	}

	if len(cards) < maxResults {
		cards = append(cards, s.fallback(snap, productID, maxResults-len(cards), nil)...)
	}
	return cards
}

// ForCart recommends up to 5 products for a whole cart by aggregating
// co-occurrence counts across every cart item. Products already in the cart
// are never recommended.
func (s *Service) ForCart(ctx context.Context, cartIDs []int) []product.Card {
	cards := make([]product.Card, 0, maxResults)
	if len(cartIDs) == 0 {
		return cards
	}
	snap := s.manager.Snapshot(ctx)

	inCart := make(map[int]bool, len(cartIDs))
	for _, id := range cartIDs {
		inCart[id] = true
	}

	scores := make(map[int]int)
	for _, id := range cartIDs {
		for other, count := range snap.Matrix.Row(id) {
			if inCart[other] {
				continue
			}
			if _, ok := snap.Products[other]; !ok {
				continue
			}
			scores[other] += count
		}
	}

	for _, cand := range rank(scores) {
		p, ok := snap.Products[cand.id]
		if !ok {
			continue
		}
		cards = append(cards, p.Card())
		if len(cards) == maxResults {
			break
		}
	}

	if len(cards) < maxResults {
		// category fallback is seeded on the first product in the cart
		cards = append(cards, s.fallback(snap, cartIDs[0], maxResults-len(cards), inCart)...)
	}
	return cards
}

// Refresh forces a re-fetch from the provider and swaps in a new snapshot.
func (s *Service) Refresh(ctx context.Context) *Snapshot {
	return s.manager.Refresh(ctx)
}

type candidate struct {
	id    int
	count int
}

// rank orders candidates by count descending; equal counts are ordered by
// ascending product id so rankings are reproducible.
func rank(scores map[int]int) []candidate {
	ranked := make([]candidate, 0, len(scores))
	for id, count := range scores {
		ranked = append(ranked, candidate{id: id, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].id < ranked[j].id
	})
	return ranked
}

// fallback picks up to limit products related to the seed product when
// co-occurrence data runs out: products sharing a category with the seed
// when it has one, any product otherwise. The pick is randomized so repeat
// visitors see some variety.
func (s *Service) fallback(snap *Snapshot, seedID, limit int, exclude map[int]bool) []product.Card {
	if limit <= 0 {
		return nil
	}
	seed, ok := snap.Products[seedID]
	if !ok {
		return nil
	}

	seedCats := seed.CategoryIDs()
	pool := make([]product.Product, 0)
	if len(seedCats) > 0 {
		for id, p := range snap.Products {
			if id == seedID || exclude[id] {
				continue
			}
			if sharesCategory(seedCats, p.CategoryIDs()) {
				pool = append(pool, p)
			}
		}
	}
	// no category data or no overlap: widen to the whole catalog
	if len(pool) == 0 {
		for id, p := range snap.Products {
			if id == seedID || exclude[id] {
				continue
			}
			pool = append(pool, p)
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > limit {
		pool = pool[:limit]
	}

	cards := make([]product.Card, 0, len(pool))
	for _, p := range pool {
		cards = append(cards, p.Card())
	}
	return cards
}

func sharesCategory(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
