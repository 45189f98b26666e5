package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenHandler mints identity tokens for callers whose address has
// already been verified out of band. It stands in for the deployment's
// real credential issuer; the ledger itself only ever sees the subject.
type TokenHandler struct {
	JWTSecret []byte
	TTL       time.Duration
}

func (h *TokenHandler) IssueToken(c echo.Context) error {
	var req struct {
		Address string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "address is required")
	}

	ttl := h.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   req.Address,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}

	return c.JSON(http.StatusOK, map[string]string{"token": signed})
}
