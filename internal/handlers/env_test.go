package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvoronin/market_ledger/internal/ledger"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	A         *AccountHandler
	P         *ProductHandler
	C         *CartHandler
	TK        *TokenHandler
	DB        *gorm.DB
	JWTSecret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, ledger.Migrate(db))

	lgr := ledger.New(db)
	secret := []byte("test-jwt-secret")

	// nil producer and nil index drop events and search writes
	env := &testEnv{
		T:         t,
		E:         echo.New(),
		DB:        db,
		JWTSecret: secret,
	}
	env.A = &AccountHandler{Ledger: lgr, JWTSecret: secret}
	env.P = &ProductHandler{Ledger: lgr, JWTSecret: secret}
	env.C = &CartHandler{Ledger: lgr, JWTSecret: secret}
	env.TK = &TokenHandler{JWTSecret: secret}

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// mintToken exercises the token endpoint and returns a signed identity
// token for the address.
func mintToken(t *testing.T, env *testEnv, address string) string {
	t.Helper()

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/token", map[string]string{"address": address}, "")
	require.NoError(t, env.TK.IssueToken(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// registerAccount creates an account through the handler and returns
// the caller's token.
func registerAccount(t *testing.T, env *testEnv, address, details string) string {
	t.Helper()

	token := mintToken(t, env, address)
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/account", map[string]string{"details": details}, token)
	require.NoError(t, env.A.CreateAccount(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	return token
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	require.Error(t, err)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}
