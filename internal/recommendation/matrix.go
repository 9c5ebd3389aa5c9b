package recommendation

import "github.com/zid-upsell/backend/internal/order"

// Matrix counts, for every pair of distinct products, how many orders
// contained both. It is symmetric (m[a][b] == m[b][a]) and never records a
// product against itself.
type Matrix map[int]map[int]int

// BuildMatrix builds a co-occurrence matrix from the order history. It is a
// pure function of its input: nothing from a previous build carries over.
// Orders with fewer than two distinct products contribute nothing.
func BuildMatrix(orders []order.Order) Matrix {
	m := make(Matrix)
	for _, o := range orders {
		ids := o.ProductIDs()
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				m.bump(ids[i], ids[j])
				m.bump(ids[j], ids[i])
			}
		}
	}
	return m
}

func (m Matrix) bump(a, b int) {
	row := m[a]
	if row == nil {
		row = make(map[int]int)
		m[a] = row
	}
	row[b]++
}

// Row returns the co-occurrence counts recorded for a product. The returned
// map may be nil when the product never appeared in a multi-product order.
func (m Matrix) Row(id int) map[int]int {
	return m[id]
}
