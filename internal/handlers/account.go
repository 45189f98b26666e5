package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvoronin/market_ledger/internal/events"
	"github.com/mvoronin/market_ledger/internal/ledger"
	"github.com/mvoronin/market_ledger/internal/logging"
	"github.com/mvoronin/market_ledger/internal/search"
)

type AccountHandler struct {
	Ledger    *ledger.Ledger
	Producer  *events.Producer
	Index     *search.Index
	JWTSecret []byte
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.create")

	address, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Details string `json:"details"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("account_create_failed", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	acc, err := h.Ledger.CreateAccount(ctx, address, req.Details)
	if err != nil {
		l.Warn("account_create_failed", "address", address, "error", err)
		return ledgerError(err)
	}

	publish(c, h.Producer, events.TopicAccounts, address, map[string]any{
		"type":    "account_created",
		"address": address,
		"id":      acc.ID,
	})
	l.Info("account_created", "address", address, "id", acc.ID)
	return c.JSON(http.StatusCreated, acc)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	acc, err := h.Ledger.FindAccount(c.Request().Context(), c.Param("address"))
	if err != nil {
		return ledgerError(err)
	}
	return c.JSON(http.StatusOK, acc)
}

func (h *AccountHandler) PatchAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.patch")

	address, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Details string `json:"details"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("account_patch_failed", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	acc, err := h.Ledger.UpdateAccountDetails(ctx, address, req.Details)
	if err != nil {
		l.Warn("account_patch_failed", "address", address, "error", err)
		return ledgerError(err)
	}

	publish(c, h.Producer, events.TopicAccounts, address, map[string]any{
		"type":    "account_updated",
		"address": address,
		"id":      acc.ID,
	})
	l.Info("account_updated", "address", address, "id", acc.ID)
	return c.JSON(http.StatusOK, acc)
}

// DeleteAccount cascades inside the ledger; here we additionally drop
// the seller's product documents from the search index once the cascade
// has committed.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.delete")

	address, err := CallerAddress(c, h.JWTSecret)
	if err != nil {
		return err
	}

	prods, err := h.Ledger.ProductsBySeller(ctx, address)
	if err != nil {
		l.Error("account_delete_failed", "address", address, "error", err)
		return ledgerError(err)
	}

	if err := h.Ledger.DeleteAccount(ctx, address); err != nil {
		l.Warn("account_delete_failed", "address", address, "error", err)
		return ledgerError(err)
	}

	for _, prod := range prods {
		if err := h.Index.DeleteProduct(ctx, prod.ID); err != nil {
			l.Error("search deindex failed", "product_id", prod.ID, "error", err)
		}
	}

	publish(c, h.Producer, events.TopicAccounts, address, map[string]any{
		"type":    "account_deleted",
		"address": address,
	})
	l.Info("account_deleted", "address", address)
	return c.NoContent(http.StatusNoContent)
}
