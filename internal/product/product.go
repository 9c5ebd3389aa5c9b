package product

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Product is a raw product record as returned by the Zid API. The API is not
// consistent about field names or scalar types across stores, so the optional
// fields keep every known variant and the accessor methods pick the first one
// that is populated.
type Product struct {
	ID         FlexInt       `json:"id,omitempty"`
	Title      string        `json:"title,omitempty"`
	Name       string        `json:"name,omitempty"`
	Price      *FlexFloat    `json:"price,omitempty"`
	SalePrice  *FlexFloat    `json:"price_after_discount,omitempty"`
	MainImage  string        `json:"main_image,omitempty"`
	Image      string        `json:"image,omitempty"`
	Images     []ImageRef    `json:"images,omitempty"`
	CategoryID *FlexInt      `json:"category_id,omitempty"`
	Categories []CategoryRef `json:"categories,omitempty"`
}

// Card is the public DTO returned by the recommendation API. ID is a pointer
// so a record that arrived without an id projects as JSON null.
type Card struct {
	ID    *int    `json:"id"`
	Title string  `json:"title"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

// Card projects the raw record into the minimal shape the storefront needs.
func (p Product) Card() Card {
	card := Card{
		Title: p.DisplayTitle(),
		Image: p.ImageURL(),
		Price: p.EffectivePrice(),
	}
	if p.ID != 0 {
		id := int(p.ID)
		card.ID = &id
	}
	return card
}

// DisplayTitle prefers `title`, then `name`.
func (p Product) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// imageExtractors are tried in order; the first non-empty result wins. New
// upstream image shapes get a new entry here instead of another conditional.
var imageExtractors = []func(Product) string{
	func(p Product) string { return p.MainImage },
	func(p Product) string { return p.Image },
	func(p Product) string {
		if len(p.Images) > 0 {
			return string(p.Images[0])
		}
		return ""
	},
}

// ImageURL resolves the product image from the known upstream variants.
func (p Product) ImageURL() string {
	for _, extract := range imageExtractors {
		if url := extract(p); url != "" {
			return url
		}
	}
	return ""
}

// EffectivePrice prefers `price` over `price_after_discount`, defaulting to 0.
// Presence matters, not value: an explicit price of 0 wins over a discount.
func (p Product) EffectivePrice() float64 {
	if p.Price != nil {
		return float64(*p.Price)
	}
	if p.SalePrice != nil {
		return float64(*p.SalePrice)
	}
	return 0
}

// CategoryIDs returns the deduplicated category ids of the product, merging
// the single `category_id` field with the `categories` list.
func (p Product) CategoryIDs() []int {
	ids := make([]int, 0, len(p.Categories)+1)
	seen := make(map[int]bool, len(p.Categories)+1)
	add := func(id int) {
		if id != 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if p.CategoryID != nil {
		add(int(*p.CategoryID))
	}
	for _, c := range p.Categories {
		add(int(c))
	}
	return ids
}

// FlexInt decodes a JSON number or a numeric string into an int. Values that
// cannot be interpreted as an integer decode to 0 rather than failing the
// whole payload.
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

// FlexFloat decodes a JSON number or a numeric string into a float64, with
// the same tolerance as FlexInt.
type FlexFloat float64

func (v *FlexFloat) UnmarshalJSON(b []byte) error {
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
			*v = FlexFloat(n)
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*v = FlexFloat(n)
	}
	return nil
}

// ImageRef is one entry of the `images` list: either a plain URL string or an
// object carrying the URL under `url` or `image`.
type ImageRef string

func (r *ImageRef) UnmarshalJSON(b []byte) error {
	*r = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			URL   string `json:"url"`
			Image string `json:"image"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		if obj.URL != "" {
			*r = ImageRef(obj.URL)
		} else {
			*r = ImageRef(obj.Image)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	*r = ImageRef(s)
	return nil
}

// CategoryRef is one entry of the `categories` list: either a bare id or an
// object with an `id` field.
type CategoryRef int

func (r *CategoryRef) UnmarshalJSON(b []byte) error {
	*r = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			ID FlexInt `json:"id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		*r = CategoryRef(obj.ID)
		return nil
	}
	var id FlexInt
	if err := id.UnmarshalJSON(b); err != nil {
		return nil
	}
	*r = CategoryRef(id)
	return nil
}
