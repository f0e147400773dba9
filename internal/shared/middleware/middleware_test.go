package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rediscache "bookstore-api/internal/infrastructure/cache"
	"bookstore-api/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Code
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("generated", func(t *testing.T) {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)

		w := perform(r, req)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")

		w := perform(r, req)
		assert.NotEqual(t, "<script>", w.Body.String())
	})
}

func TestLogger_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func authRouter(m *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(m), func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, claims)
	})
	return r
}

func TestAuth(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	r := authRouter(m)

	token, err := m.GenerateToken(5, "me@example.com", "admin")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := perform(r, req)

		require.Equal(t, http.StatusOK, w.Code)
		var claims jwt.Claims
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claims))
		assert.Equal(t, int64(5), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	tests := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"no token":       "Bearer ",
		"bad token":      "Bearer not.a.token",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			w := perform(r, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
		})
	}
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/login", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func loginFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	return req
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	mr := miniredis.RunT(t)
	client := rediscache.NewRedisClient(mr.Addr(), "", 0)
	defer client.Close()

	r := limitedRouter(NewRateLimiter(client, "login", 3, time.Minute))

	for i := 0; i < 3; i++ {
		w := perform(r, loginFrom("10.0.0.1"))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := perform(r, loginFrom("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "TOO_MANY_REQUESTS", errorCode(t, w))

	// other clients are unaffected
	assert.Equal(t, http.StatusOK, perform(r, loginFrom("10.0.0.2")).Code)

	// window expires
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, perform(r, loginFrom("10.0.0.1")).Code)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return m.Called(ctx, key, ttl).Error(0)
}

func (m *mockCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *mockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	store := new(mockCache)
	store.On("Increment", mock.Anything, "ratelimit:login:10.0.0.9").
		Return(int64(0), errors.New("connection refused"))

	r := limitedRouter(NewRateLimiter(store, "login", 1, time.Minute))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, perform(r, loginFrom("10.0.0.9")).Code)
	}
	store.AssertExpectations(t)
}

func TestRateLimiter_RearmsCounterWithoutExpiry(t *testing.T) {
	store := new(mockCache)
	key := "ratelimit:login:10.0.0.7"
	store.On("Increment", mock.Anything, key).Return(int64(1), nil).Once()
	store.On("Expire", mock.Anything, key, time.Minute).Return(errors.New("i/o timeout")).Once()
	store.On("Increment", mock.Anything, key).Return(int64(2), nil).Once()
	store.On("TTL", mock.Anything, key).Return(time.Duration(-1), nil).Once()
	store.On("Expire", mock.Anything, key, time.Minute).Return(nil).Once()

	r := limitedRouter(NewRateLimiter(store, "login", 1, time.Minute))

	assert.Equal(t, http.StatusOK, perform(r, loginFrom("10.0.0.7")).Code)
	w := perform(r, loginFrom("10.0.0.7"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	store.AssertExpectations(t)
}

func TestRateLimiter_StaleCounterExpiresAfterWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := rediscache.NewRedisClient(mr.Addr(), "", 0)
	defer client.Close()

	// counter left behind with no TTL
	require.NoError(t, mr.Set("ratelimit:login:10.0.0.8", "50"))
	r := limitedRouter(NewRateLimiter(client, "login", 3, time.Minute))

	assert.Equal(t, http.StatusTooManyRequests, perform(r, loginFrom("10.0.0.8")).Code)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:login:10.0.0.8"))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, perform(r, loginFrom("10.0.0.8")).Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := limitedRouter(NewRateLimiter(nil, "login", 1, time.Minute))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, perform(r, loginFrom("10.0.0.1")).Code)
	}
}
