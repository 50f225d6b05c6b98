package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
	apphttp "github.com/tu-usuario/retail-backoffice/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/retail-backoffice/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	testStoreID   = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "retail-backoffice-test"
	testExpMin    = 60
)

// buildTestApp app Fiber mínima con una ruta protegida que devuelve el scope
// construido por el middleware.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		sc, _ := apphttp.GetScope(c)
		return c.JSON(fiber.Map{
			"user_id":        apphttp.GetUserID(c),
			"tenant_id":      sc.TenantID,
			"store_id":       sc.StoreID,
			"level":          sc.Level,
			"enforce_tenant": sc.EnforceTenant,
			"enforce_store":  sc.EnforceStore,
		})
	})
	return app
}

func tokenFor(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// El scope de un admin de tienda (nivel 3) trae ambos enforcement activos.
func TestAuthMiddleware_ScopeDeAdminDeTienda(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, pkgjwt.Identity{
		UserID: testUserID, TenantID: testTenantID, StoreID: testStoreID,
		Level: scope.LevelStoreAdmin, Role: "store_admin",
	}))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.Equal(t, testStoreID, body["store_id"])
	assert.Equal(t, true, body["enforce_tenant"])
	assert.Equal(t, true, body["enforce_store"])
}

// Root no lleva enforcement de tenant ni de tienda.
func TestAuthMiddleware_ScopeDeRoot(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, pkgjwt.Identity{
		UserID: testUserID, TenantID: testTenantID,
		Level: scope.LevelRoot, Role: "root", IsRoot: true,
	}))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["enforce_tenant"])
	assert.Equal(t, false, body["enforce_store"])
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", pkgjwt.Identity{
		UserID: testUserID, TenantID: testTenantID, Level: scope.LevelStaff, Role: "cashier",
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWT_GenerateAndParse_Identidad(t *testing.T) {
	id := pkgjwt.Identity{
		UserID: testUserID, TenantID: testTenantID, StoreID: testStoreID,
		Level: scope.LevelStaff, Role: "cashier",
	}
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	parsed, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, *parsed)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID: testUserID, TenantID: testTenantID, Level: scope.LevelStaff, Role: "cashier",
	}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}
