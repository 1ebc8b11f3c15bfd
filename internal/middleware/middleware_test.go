package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("", "en"); err != nil {
		panic(err)
	}
}

type envelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func whoami(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	role, _ := utils.GetRoleFromContext(c)
	c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role, "userName": utils.GetUserNameFromContext(c)})
}

func TestAuthRequired(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour, "test")
	userID := uuid.NewString()
	token, err := tokens.Generate(userID, "user", "ana@example.com", "ana")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthRequired(tokens, "token"), whoami)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decode(t, w).Error.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := utils.NewTokenManager("other", time.Hour, "test").Generate(userID, "admin", "", "")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: forged})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, userID, body["userId"])
		assert.Equal(t, "user", body["role"])
		assert.Equal(t, "ana", body["userName"])
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTokenFromRequest_CookieWins(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
	c.Request.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-cookie", TokenFromRequest(c, "token"))
}

// withClaims stands in for AuthRequired.
func withClaims(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestAdminRequired(t *testing.T) {
	for role, want := range map[string]int{
		"admin": http.StatusOK,
		"user":  http.StatusForbidden,
		"":      http.StatusForbidden,
	} {
		r := gin.New()
		r.GET("/admin", withClaims(uuid.NewString(), role), AdminRequired(), whoami)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, want, w.Code, "role %q", role)
	}
}

func TestOwnerOrAdmin(t *testing.T) {
	owner := uuid.NewString()
	other := uuid.NewString()

	cases := []struct {
		name   string
		caller string
		role   string
		want   int
	}{
		{"owner", owner, "user", http.StatusOK},
		{"someone else", other, "user", http.StatusForbidden},
		{"admin", other, "admin", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/cart/:userId", withClaims(tc.caller, tc.role), OwnerOrAdmin("userId"), whoami)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart/"+owner, nil))
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", decode(t, w).Error.Code)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	rl.getVisitor("10.0.0.1")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.getVisitor("10.0.0.2")

	rl.evictIdle(3 * time.Minute)

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRequestLogger_PropagatesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

type chanAuditRepo struct {
	entries chan *models.AuditLog
}

func (r *chanAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	r.entries <- entry
	return nil
}

func TestAuditLogMiddleware(t *testing.T) {
	repo := &chanAuditRepo{entries: make(chan *models.AuditLog, 4)}
	adminID := uuid.New()
	orderID := uuid.New()

	var seenBody map[string]interface{}
	r := gin.New()
	admin := r.Group("/api/admin", withClaims(adminID.String(), "admin"), AuditLogMiddleware(repo))
	admin.PUT("/orders/:id/status", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&seenBody))
		c.Status(http.StatusOK)
	})
	admin.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	body := []byte(`{"orderStatus":"shipped","password":"hunter2"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+orderID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hunter2", seenBody["password"], "handler still sees the full body")

	select {
	case entry := <-repo.entries:
		assert.Equal(t, "PUT /api/admin/orders/:id/status", entry.Action)
		assert.Equal(t, "orders", entry.ResourceType)
		require.NotNil(t, entry.UserID)
		assert.Equal(t, adminID, *entry.UserID)
		require.NotNil(t, entry.ResourceID)
		assert.Equal(t, orderID, *entry.ResourceID)
		assert.Equal(t, http.StatusOK, entry.StatusCode)
		assert.Equal(t, "shipped", entry.Payload["orderStatus"])
		assert.NotContains(t, entry.Payload, "password")
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry not written")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)
	select {
	case entry := <-repo.entries:
		t.Fatalf("GET should not be audited, got %q", entry.Action)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestExtractResource(t *testing.T) {
	id := uuid.NewString()
	assert.Equal(t, "orders", extractResourceType("/api/admin/orders/"+id+"/status"))
	assert.Equal(t, "users", extractResourceType("/api/admin/users"))
	assert.Equal(t, "unknown", extractResourceType("/api/admin"))
	assert.Equal(t, id, extractResourceID("/api/admin/orders/"+id+"/status"))
	assert.Empty(t, extractResourceID("/api/admin/orders"))
}
