package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mvoronin/market_ledger/internal/events"
	"github.com/mvoronin/market_ledger/internal/ledger"
	"github.com/mvoronin/market_ledger/internal/logging"
	"github.com/mvoronin/market_ledger/internal/search"
	"github.com/mvoronin/market_ledger/internal/util"
)

type ProductHandler struct {
	Ledger    *ledger.Ledger
	Producer  *events.Producer
	Index     *search.Index
	JWTSecret []byte
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	seller, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Details string  `json:"details"`
		Price   float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("product_create_failed", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Ledger.CreateProduct(ctx, seller, req.Details, req.Price)
	if err != nil {
		l.Warn("product_create_failed", "seller", seller, "error", err)
		return ledgerError(err)
	}

	if err := h.Index.IndexProduct(ctx, prod); err != nil {
		l.Error("search index failed", "product_id", prod.ID, "error", err)
	}
	publish(c, h.Producer, events.TopicProducts, seller, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"seller":    seller,
	})
	l.Info("product_created", "product_id", prod.ID, "seller", seller)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	prod, err := h.Ledger.FindProduct(c.Request().Context(), uint(id))
	if err != nil {
		return ledgerError(err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Ledger.ListProducts(ctx, offset, limit)
	if err != nil {
		l.Error("product_list_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	caller, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	var req struct {
		Details string  `json:"details"`
		Price   float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("product_patch_failed", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Ledger.UpdateProduct(ctx, caller, uint(id), req.Details, req.Price)
	if err != nil {
		l.Warn("product_patch_failed", "product_id", id, "caller", caller, "error", err)
		return ledgerError(err)
	}

	if err := h.Index.IndexProduct(ctx, prod); err != nil {
		l.Error("search index failed", "product_id", prod.ID, "error", err)
	}
	publish(c, h.Producer, events.TopicProducts, caller, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"seller":    prod.Seller,
	})
	l.Info("product_updated", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	caller, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	if err := h.Ledger.DeleteProduct(ctx, caller, uint(id)); err != nil {
		l.Warn("product_delete_failed", "product_id", id, "caller", caller, "error", err)
		return ledgerError(err)
	}

	if err := h.Index.DeleteProduct(ctx, uint(id)); err != nil {
		l.Error("search deindex failed", "product_id", id, "error", err)
	}
	publish(c, h.Producer, events.TopicProducts, caller, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	l.Info("product_deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
