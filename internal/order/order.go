package order

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Order is a raw historical order as returned by the Zid API. Only the line
// items matter to the recommendation engine; depending on the endpoint they
// arrive under `items` or `order_items`.
type Order struct {
	ID         FlexInt    `json:"id,omitempty"`
	Items      []LineItem `json:"items,omitempty"`
	OrderItems []LineItem `json:"order_items,omitempty"`
}

// LineItem is one purchased product inside an order. The product id comes
// under `product_id` or `productId` depending on the API version.
type LineItem struct {
	ProductID    FlexInt `json:"product_id,omitempty"`
	ProductIDAlt FlexInt `json:"productId,omitempty"`
}

func (l LineItem) productID() int {
	if l.ProductID != 0 {
		return int(l.ProductID)
	}
	return int(l.ProductIDAlt)
}

// LineItems returns whichever items list the order carries.
func (o Order) LineItems() []LineItem {
	if len(o.Items) > 0 {
		return o.Items
	}
	return o.OrderItems
}

// ProductIDs extracts the distinct product ids of the order in first-seen
// order. Items without a usable id are dropped; duplicates within the same
// order are collapsed so an order cannot inflate co-occurrence with itself.
func (o Order) ProductIDs() []int {
	items := o.LineItems()
	ids := make([]int, 0, len(items))
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		id := item.productID()
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// FlexInt decodes a JSON number or a numeric string into an int. Anything
// else decodes to 0 rather than failing the whole payload.
type FlexInt int

func (v *FlexInt) UnmarshalJSON(b []byte) error {
	*v = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			*v = FlexInt(int(n))
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*v = FlexInt(int(n))
	}
	return nil
}
