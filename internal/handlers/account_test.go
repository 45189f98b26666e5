package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvoronin/market_ledger/internal/models"
)

func TestCreateAccountHandler(t *testing.T) {
	env := newTestEnv(t)
	token := mintToken(t, env, "addr1")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/account", map[string]string{"details": "alice"}, token)
	require.NoError(t, env.A.CreateAccount(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "addr1", resp.Address)
	assert.Equal(t, "alice", resp.Details)
}

func TestCreateAccountHandler_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	token := registerAccount(t, env, "addr1", "alice")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/account", map[string]string{"details": "alice2"}, token)
	requireHTTPError(t, env.A.CreateAccount(c), http.StatusConflict)
}

func TestCreateAccountHandler_EmptyDetails(t *testing.T) {
	env := newTestEnv(t)
	token := mintToken(t, env, "addr1")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/account", map[string]string{"details": ""}, token)
	requireHTTPError(t, env.A.CreateAccount(c), http.StatusBadRequest)
}

func TestCreateAccountHandler_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/account", map[string]string{"details": "alice"}, "")
	requireHTTPError(t, env.A.CreateAccount(c), http.StatusUnauthorized)
}

func TestGetAccountHandler(t *testing.T) {
	env := newTestEnv(t)
	registerAccount(t, env, "addr1", "alice")

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/account/addr1", nil, "")
	c.SetParamNames("address")
	c.SetParamValues("addr1")
	require.NoError(t, env.A.GetAccount(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "addr1", resp.Address)
	assert.Equal(t, "alice", resp.Details)
}

func TestGetAccountHandler_Unregistered(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/account/ghost", nil, "")
	c.SetParamNames("address")
	c.SetParamValues("ghost")
	requireHTTPError(t, env.A.GetAccount(c), http.StatusNotFound)
}

func TestPatchAccountHandler(t *testing.T) {
	env := newTestEnv(t)
	token := registerAccount(t, env, "addr1", "alice")

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/account", map[string]string{"details": "alice v2"}, token)
	require.NoError(t, env.A.PatchAccount(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "alice v2", resp.Details)
}

func TestDeleteAccountHandler_Cascades(t *testing.T) {
	env := newTestEnv(t)
	token := registerAccount(t, env, "addr1", "alice")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]any{"details": "widget", "price": 100}, token)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]string{"details": "cart A"}, token)
	require.NoError(t, env.C.AddToCart(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodDelete, "/api/v1/account", nil, token)
	require.NoError(t, env.A.DeleteAccount(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/account/addr1", nil, "")
	c.SetParamNames("address")
	c.SetParamValues("addr1")
	requireHTTPError(t, env.A.GetAccount(c), http.StatusNotFound)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/products/1", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.P.GetProduct(c), http.StatusNotFound)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/cart/addr1", nil, "")
	c.SetParamNames("address")
	c.SetParamValues("addr1")
	requireHTTPError(t, env.C.GetCart(c), http.StatusNotFound)
}

func TestDeleteAccountHandler_Unregistered(t *testing.T) {
	env := newTestEnv(t)
	token := mintToken(t, env, "ghost")

	_, c := env.doJSONRequest(http.MethodDelete, "/api/v1/account", nil, token)
	requireHTTPError(t, env.A.DeleteAccount(c), http.StatusNotFound)
}
