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

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	apphttp "github.com/jhoicas/inventario-mmg/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-mmg/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventario-mmg-test"
	testExpMin    = 60
)

// buildTestApp aplicación Fiber mínima con AuthMiddleware + RequireRole y un handler dummy.
func buildTestApp(allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// bearer genera un JWT con el rol y departamento indicados.
func bearer(t *testing.T, userID string, role entity.Role, department string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID: userID, Role: string(role), Department: department,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_MMGAccedeRutaMMG(t *testing.T) {
	app := buildTestApp(entity.RoleMMGInventoryHolder)
	resp := doGet(t, app, "/protected", bearer(t, testUserID, entity.RoleMMGInventoryHolder, "MMG"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, string(entity.RoleMMGInventoryHolder), body["role"])
}

func TestRequireRole_HolderAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(entity.RoleInventoryHolder, entity.RoleMMGInventoryHolder)
	resp := doGet(t, app, "/protected", bearer(t, testUserID, entity.RoleInventoryHolder, "IT"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UserBloqueadoEnRutaMMG(t *testing.T) {
	app := buildTestApp(entity.RoleMMGInventoryHolder)
	resp := doGet(t, app, "/protected", bearer(t, testUserID, entity.RoleUser, "IT"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleMMGInventoryHolder)
	resp := doGet(t, app, "/protected", bearer(t, testUserID, "", "IT"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleUser)
	resp := doGet(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleUser)
	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		resp := doGet(t, app, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_ConstruyeActor(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		a := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"id": a.ID, "role": a.Role, "department": a.Department})
	})

	resp := doGet(t, app, "/me", bearer(t, testUserID, entity.RoleInventoryHolder, "FINANCE"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["id"])
	assert.Equal(t, string(entity.RoleInventoryHolder), body["role"])
	assert.Equal(t, "FINANCE", body["department"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, Role: "User", Department: "IT"}, testIssuer, testExpMin)
	require.NoError(t, err)

	id, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.Identity{UserID: testUserID, Role: "User", Department: "IT"}, id)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, Role: "User"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, Role: "User"}, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}
