package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-ledger/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "stock-ledger-test"
	testExpMin    = 60
)

// buildTestApp monta GET /protected con AuthMiddleware y RequireRole(allowedRoles...).
// El handler responde 200 con el rol leído de los locals.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

// tokenForRole genera el header Authorization con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Los grupos replican los del router: operadores registran movimientos,
// revisores resuelven ajustes y solo admin reconcilia o edita el catálogo.
func TestRequireRole_MatrizDeGrupos(t *testing.T) {
	groups := map[string][]string{
		"operadores": {apphttp.RoleAdmin, apphttp.RoleBodeguero},
		"revisores":  {apphttp.RoleAdmin, apphttp.RoleAuditor},
		"solo admin": {apphttp.RoleAdmin},
		"cualquiera": {apphttp.RoleAdmin, apphttp.RoleBodeguero, apphttp.RoleAuditor},
	}
	cases := []struct {
		group  string
		role   string
		status int
	}{
		{"operadores", apphttp.RoleBodeguero, http.StatusOK},
		{"operadores", apphttp.RoleAuditor, http.StatusForbidden},
		{"revisores", apphttp.RoleAuditor, http.StatusOK},
		{"revisores", apphttp.RoleBodeguero, http.StatusForbidden},
		{"solo admin", apphttp.RoleAdmin, http.StatusOK},
		{"solo admin", apphttp.RoleBodeguero, http.StatusForbidden},
		{"solo admin", apphttp.RoleAuditor, http.StatusForbidden},
		{"cualquiera", apphttp.RoleAuditor, http.StatusOK},
		{"cualquiera", "vendedor", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.group+"/"+tc.role, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(groups[tc.group]...), tokenForRole(t, tc.role))
			defer resp.Body.Close()
			require.Equal(t, tc.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tc.status == http.StatusOK {
				assert.Contains(t, string(body), `"role":"`+tc.role+`"`)
			} else {
				assert.Contains(t, string(body), "FORBIDDEN")
			}
		})
	}
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(apphttp.RoleAdmin), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_HeaderInvalido(t *testing.T) {
	app := buildTestApp(apphttp.RoleAdmin)
	valid := tokenForRole(t, apphttp.RoleAdmin)
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema", valid[len("Bearer "):], "INVALID_TOKEN"},
		{"esquema distinto", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, tc.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestAuthMiddleware_EsquemaSinDistinguirMayusculas(t *testing.T) {
	tok := tokenForRole(t, apphttp.RoleBodeguero)
	resp := doRequest(t, buildTestApp(apphttp.RoleBodeguero), "bearer "+tok[len("Bearer "):])
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleAuditor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, apphttp.RoleAuditor, body["role"])
}
