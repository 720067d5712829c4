package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/velora-shop/velora-backend/internal/product"
	"github.com/velora-shop/velora-backend/internal/user"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addLine)
	app.Patch("/api/v1/cart", h.updateLine)
	app.Post("/api/v1/cart/sync", h.syncCart)
	app.Delete("/api/v1/cart/:variantId<[0-9]+>", h.removeLine)
	app.Delete("/api/v1/cart", h.clearCart)
}

// isCOD reads the cash-on-delivery flag the client sends with priced reads.
func isCOD(c *fiber.Ctx) bool {
	v := c.Query("cod")
	return v == "1" || v == "true"
}

func (h *Handler) respondView(c *fiber.Ctx, view *View, err error) error {
	if err != nil {
		switch err {
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case product.ErrVariantNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "variant not found"})
		case ErrLineNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart line not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "cart line belongs to another user"})
		case ErrBadQuantity, ErrVariantMismatch:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	view, err := h.service.PriceCart(userID, isCOD(c))
	return h.respondView(c, view, err)
}

type addLineRequest struct {
	ProductID int  `json:"productID"`
	VariantID *int `json:"variantID,omitempty"`
	Quantity  int  `json:"quantity"`
}

func (h *Handler) addLine(c *fiber.Ctx) error {
	payload := new(addLineRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	view, err := h.service.Add(userID, payload.ProductID, payload.VariantID, payload.Quantity, isCOD(c))
	return h.respondView(c, view, err)
}

type updateLineRequest struct {
	LineID   int `json:"lineID"`
	Quantity int `json:"quantity"`
}

func (h *Handler) updateLine(c *fiber.Ctx) error {
	payload := new(updateLineRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.LineID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid lineID"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	view, err := h.service.UpdateQuantity(userID, payload.LineID, payload.Quantity, isCOD(c))
	return h.respondView(c, view, err)
}

func (h *Handler) removeLine(c *fiber.Ctx) error {
	variantID, err := strconv.Atoi(c.Params("variantId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid variantId"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	view, err := h.service.RemoveByVariant(userID, variantID, isCOD(c))
	return h.respondView(c, view, err)
}

type syncRequest struct {
	Items []GuestLine `json:"items"`
}

func (h *Handler) syncCart(c *fiber.Ctx) error {
	payload := new(syncRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	view, err := h.service.Sync(userID, payload.Items, isCOD(c))
	return h.respondView(c, view, err)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
