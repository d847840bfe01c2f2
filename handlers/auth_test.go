package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	r := setupServer(t)
	createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "  Admin@X.com ",
		"password": "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["role"])
}

func TestLoginFailureIsGeneric(t *testing.T) {
	r := setupServer(t)
	createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)

	wrongPass := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@x.com", "password": "nope",
	})
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@x.com", "password": "secret123",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// identical message, no user enumeration
	assert.Equal(t, decodeBody(t, wrongPass)["error"], decodeBody(t, unknownEmail)["error"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := setupServer(t)

	for _, path := range []string{
		"/api/admin/schools",
		"/api/admin/workers",
		"/api/admin/deliveries",
		"/api/admin/reports",
	} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRoleGateRejectsOtherRoles(t *testing.T) {
	r := setupServer(t)
	cooker := createUser(t, "Cook", "cook@x.com", "secret123", models.RoleCooker)

	w := doJSON(t, r, http.MethodGet, "/api/admin/schools", tokenFor(t, cooker), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/delivery/stats", tokenFor(t, cooker), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTokenSignedWithOtherMethodRejected(t *testing.T) {
	r := setupServer(t)
	user := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)

	// well-formed claims, valid secret, wrong algorithm
	claims := middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(config.JWTSecret)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/profile", signed, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileReturnsCaller(t *testing.T) {
	r := setupServer(t)
	cooker := createUser(t, "Cook", "cook@x.com", "secret123", models.RoleCooker)

	w := doJSON(t, r, http.MethodGet, "/api/profile", tokenFor(t, cooker), nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "cook@x.com", user["email"])
}
