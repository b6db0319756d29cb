package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	apphttp "github.com/jhoicas/backoffice-inventario/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/backoffice-inventario/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-pruebas-inventario"
	testUserID    = "usr-0001"
	testIssuer    = "backoffice-test"
)

// tokenForRole firma un JWT de prueba con el rol indicado y lo devuelve con prefijo Bearer.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

// appConRoles monta GET /recurso protegido por AuthMiddleware + RequireRole(roles...).
func appConRoles(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/recurso",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"usuario": apphttp.GetUserID(c), "rol": apphttp.GetRole(c)})
		},
	)
	return app
}

func pedir(t *testing.T, app *fiber.App, authorization string) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	if resp.StatusCode != http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

// ─── RequireRole ──────────────────────────────────────────────────────────────

func TestRequireRole_Matriz(t *testing.T) {
	lectura := []string{pkgjwt.RoleAdmin, pkgjwt.RoleBodeguero, pkgjwt.RoleAuditor}
	escritura := []string{pkgjwt.RoleAdmin, pkgjwt.RoleBodeguero}

	casos := []struct {
		nombre   string
		permisos []string
		rol      string
		status   int
	}{
		{"admin escribe", escritura, pkgjwt.RoleAdmin, http.StatusOK},
		{"bodeguero escribe", escritura, pkgjwt.RoleBodeguero, http.StatusOK},
		{"auditor no escribe", escritura, pkgjwt.RoleAuditor, http.StatusForbidden},
		{"auditor lee", lectura, pkgjwt.RoleAuditor, http.StatusOK},
		{"rol desconocido no lee", lectura, "vendedor", http.StatusForbidden},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			status, body := pedir(t, appConRoles(tc.permisos...), tokenForRole(t, tc.rol))
			assert.Equal(t, tc.status, status)
			if tc.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body.Code)
			}
		})
	}
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	status, body := pedir(t, appConRoles(pkgjwt.RoleAdmin), tokenForRole(t, ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body.Code)
}

// ─── AuthMiddleware ───────────────────────────────────────────────────────────

func TestAuthMiddleware_CabeceraInvalida(t *testing.T) {
	otroSecreto, err := pkgjwt.Generate("otro-secreto", testUserID, pkgjwt.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)

	casos := map[string]struct {
		authorization string
		code          string
	}{
		"sin cabecera": {"", "MISSING_TOKEN"},
		"sin Bearer":   {"Token abc", "INVALID_TOKEN"},
		"malformado":   {"Bearer no.es.jwt", "INVALID_TOKEN"},
		"firma ajena":  {"Bearer " + otroSecreto, "INVALID_TOKEN"},
	}
	for nombre, tc := range casos {
		t.Run(nombre, func(t *testing.T) {
			status, body := pedir(t, appConRoles(pkgjwt.RoleAdmin), tc.authorization)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_CargaUsuarioYRol(t *testing.T) {
	app := appConRoles(pkgjwt.RoleBodeguero)
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleBodeguero))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["usuario"])
	assert.Equal(t, pkgjwt.RoleBodeguero, body["rol"])
}
