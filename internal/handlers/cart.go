package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvoronin/market_ledger/internal/events"
	"github.com/mvoronin/market_ledger/internal/ledger"
	"github.com/mvoronin/market_ledger/internal/logging"
)

type CartHandler struct {
	Ledger    *ledger.Ledger
	Producer  *events.Producer
	JWTSecret []byte
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	buyer, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Details string `json:"details"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("cart_add_failed", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Ledger.AddToCart(ctx, buyer, req.Details)
	if err != nil {
		l.Warn("cart_add_failed", "buyer", buyer, "error", err)
		return ledgerError(err)
	}

	publish(c, h.Producer, events.TopicCarts, buyer, map[string]any{
		"type":  "cart_created",
		"buyer": buyer,
	})
	l.Info("cart_created", "buyer", buyer)
	return c.JSON(http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.Ledger.FindCart(c.Request().Context(), c.Param("address"))
	if err != nil {
		return ledgerError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) PatchCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.patch")

	buyer, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Details string `json:"details"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("cart_patch_failed", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Ledger.UpdateCart(ctx, buyer, req.Details)
	if err != nil {
		l.Warn("cart_patch_failed", "buyer", buyer, "error", err)
		return ledgerError(err)
	}

	publish(c, h.Producer, events.TopicCarts, buyer, map[string]any{
		"type":  "cart_updated",
		"buyer": buyer,
	})
	l.Info("cart_updated", "buyer", buyer)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) DeleteCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete")

	buyer, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	if err := h.Ledger.RemoveFromCart(ctx, buyer); err != nil {
		l.Warn("cart_delete_failed", "buyer", buyer, "error", err)
		return ledgerError(err)
	}

	publish(c, h.Producer, events.TopicCarts, buyer, map[string]any{
		"type":  "cart_deleted",
		"buyer": buyer,
	})
	l.Info("cart_deleted", "buyer", buyer)
	return c.NoContent(http.StatusNoContent)
}
