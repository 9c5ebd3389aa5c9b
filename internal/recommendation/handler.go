package recommendation

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/zid-upsell/backend/internal/product"
)

// Handler exposes the recommendation endpoints over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/recommendations/product", h.forProduct)
	app.Post("/api/v1/recommendations/cart", h.forCart)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/recommendations/refresh", h.refresh)
}

func (h *Handler) forProduct(c *fiber.Ctx) error {
	// a missing or unparsable product_id behaves as "no signal", not an error
	id, _ := strconv.Atoi(c.Query("product_id"))
	return c.JSON(h.service.ForProduct(c.UserContext(), id))
}

type cartRequest struct {
	ProductIDs []product.FlexInt `json:"product_ids"`
}

func (h *Handler) forCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// entries that did not coerce to a usable id are dropped before querying
	ids := make([]int, 0, len(payload.ProductIDs))
	for _, id := range payload.ProductIDs {
		if id > 0 {
			ids = append(ids, int(id))
		}
	}

	return c.JSON(h.service.ForCart(c.UserContext(), ids))
}

func (h *Handler) refresh(c *fiber.Ctx) error {
	snap := h.service.Refresh(c.UserContext())
	return c.JSON(fiber.Map{
		"products": len(snap.Products),
		"orders":   len(snap.Orders),
	})
}
