package coupon

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/velora-shop/velora-backend/internal/user"
)

// Handler delegates coupon operations to the coupon service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/coupons", h.listCoupons)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/coupons/apply", h.applyCoupon)
	app.Delete("/api/v1/coupons/apply", h.removeCoupon)
}

type applyRequest struct {
	Code string `json:"code"`
}

func (h *Handler) applyCoupon(c *fiber.Ctx) error {
	payload := new(applyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.Code = strings.TrimSpace(payload.Code)
	if payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "coupon code is required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	applied, err := h.service.Apply(userID, payload.Code)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		case ErrInactive, ErrExpired:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusOK).JSON(applied)
}

func (h *Handler) removeCoupon(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Remove(userID); err != nil {
		switch err {
		case ErrNoPending:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no coupon applied"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(coupons)
}
