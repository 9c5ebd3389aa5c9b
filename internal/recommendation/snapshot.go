package recommendation

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/zid-upsell/backend/internal/order"
	"github.com/zid-upsell/backend/internal/product"
)

// fetchPageSize is how many products and orders are requested from the API
// on a cold load. The engine never paginates further.
const fetchPageSize = 100

// Snapshot is the coherent triple the engine queries: the catalog, the order
// history it was derived from, and the co-occurrence matrix built from it.
// A snapshot is immutable once constructed; a refresh builds a new one and
// swaps it in atomically.
type Snapshot struct {
	Products map[int]product.Product
	Orders   []order.Order
	Matrix   Matrix
}

func newSnapshot(products []product.Product, orders []order.Order) *Snapshot {
	byID := make(map[int]product.Product, len(products))
	for _, p := range products {
		if p.ID != 0 {
			byID[int(p.ID)] = p
		}
	}
	return &Snapshot{
		Products: byID,
		Orders:   orders,
		Matrix:   BuildMatrix(orders),
	}
}

// Provider fetches catalog and order pages from the external API.
type Provider interface {
	FetchProducts(ctx context.Context, page, pageSize int) ([]product.Product, error)
	FetchOrders(ctx context.Context, page, pageSize int) ([]order.Order, error)
}

// Manager owns the in-memory snapshot. The first query loads it, from the
// persisted store when possible and from the provider otherwise; concurrent
// first queries collapse into a single load. Queries after that read the
// snapshot without locking.
type Manager struct {
	store    SnapshotStore
	provider Provider
	group    singleflight.Group
	current  atomic.Pointer[Snapshot]
}

// NewManager creates a manager backed by the given persisted store and
// provider. Either may be nil; a manager with neither serves empty snapshots.
func NewManager(store SnapshotStore, provider Provider) *Manager {
	return &Manager{store: store, provider: provider}
}

// Snapshot returns the current snapshot, loading it on first use. It never
// fails: when neither the store nor the provider yields data the snapshot is
// simply empty and queries degrade to empty results.
func (m *Manager) Snapshot(ctx context.Context) *Snapshot {
	if snap := m.current.Load(); snap != nil {
		return snap
	}
	v, _, _ := m.group.Do("load", func() (interface{}, error) {
		if snap := m.current.Load(); snap != nil {
			return snap, nil
		}
		return m.load(ctx), nil
	})
	return v.(*Snapshot)
}

// Refresh bypasses the persisted store, fetches fresh data from the provider,
// persists it and swaps the new snapshot in. Concurrent refreshes collapse
// into one fetch.
func (m *Manager) Refresh(ctx context.Context) *Snapshot {
	v, _, _ := m.group.Do("load", func() (interface{}, error) {
		return m.fetchAndSwap(ctx), nil
	})
	return v.(*Snapshot)
}

func (m *Manager) load(ctx context.Context) *Snapshot {
	if m.store != nil {
		if stored, err := m.store.Load(); err == nil && stored != nil {
			snap := newSnapshot(stored.Products, stored.Orders)
			m.current.Store(snap)
			return snap
		}
	}
	return m.fetchAndSwap(ctx)
}

func (m *Manager) fetchAndSwap(ctx context.Context) *Snapshot {
	var products []product.Product
	var orders []order.Order
	if m.provider != nil {
		ps, err := m.provider.FetchProducts(ctx, 1, fetchPageSize)
		if err != nil {
			fmt.Printf("warning: could not fetch products: %v\n", err)
		} else {
			products = ps
		}
		ords, err := m.provider.FetchOrders(ctx, 1, fetchPageSize)
		if err != nil {
			fmt.Printf("warning: could not fetch orders: %v\n", err)
		} else {
			orders = ords
		}
	}

	// persist only when the fetch actually produced a catalog; a failed save
	// must not fail the request
	if len(products) > 0 && m.store != nil {
		if err := m.store.Save(&StoredSnapshot{Products: products, Orders: orders}); err != nil {
			fmt.Printf("warning: could not persist snapshot: %v\n", err)
		}
	}

	snap := newSnapshot(products, orders)
	m.current.Store(snap)
	return snap
}
