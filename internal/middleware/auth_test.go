package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/ratelimit"
)

func protectedRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", JWTAuth(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"salon_id": c.GetString("salon_id")})
	})
	return r
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	token, err := jwtService.GenerateToken("salon-1", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "salon-1")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	protectedRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsForeignSecret(t *testing.T) {
	otherService := jwt.New("other-secret", time.Hour)
	token, err := otherService.GenerateToken("salon-1", "admin")
	require.NoError(t, err)

	jwtService := jwt.New("test-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func adminRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", JWTAuth(jwtService), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAdminOnlyRejectsOtherRoles(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	token, err := jwtService.GenerateToken("salon-1", "viewer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	adminRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnlyPassesAdminRole(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	token, err := jwtService.GenerateToken("salon-1", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	adminRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitBlocksAfterBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := ratelimit.NewMemoryLimiter(2, time.Hour)

	r := gin.New()
	r.POST("/bookings", RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
