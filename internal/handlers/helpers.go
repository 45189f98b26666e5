package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mvoronin/market_ledger/internal/events"
	"github.com/mvoronin/market_ledger/internal/ledger"
	"github.com/mvoronin/market_ledger/internal/logging"
)

// ledgerError translates the ledger taxonomy into HTTP status codes.
// Anything outside the taxonomy is an internal error.
func ledgerError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ledger.ErrDuplicateUser),
		errors.Is(err, ledger.ErrInvalidCartOverride):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrEmptyData),
		errors.Is(err, ledger.ErrInvalidPrice):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrUnregisteredUser),
		errors.Is(err, ledger.ErrUnregisteredProduct),
		errors.Is(err, ledger.ErrNoCartProduct):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrOnlyOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

// CallerAddress extracts the verified caller identity from the bearer
// token. The token is minted out of band; its subject is the address.
func CallerAddress(c echo.Context, secret []byte) (string, error) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	tokenString := strings.TrimPrefix(auth, "Bearer ")
	if tokenString == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token: "+err.Error())
	}
	if !token.Valid {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	return sub, nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// publish sends a domain event and only logs on failure; event delivery
// never blocks or fails a committed ledger operation.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", topic, "error", err)
	}
}
