package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"user-management/config"
	"user-management/internal/domain/user"
	"user-management/internal/middleware"
	"user-management/internal/services"
	um_errors "user-management/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryUserRepo is an in-memory repository.UserRepository for
// handler-level tests. The email map plays the role of the unique index.
type memoryUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]user.User
	nextID  int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: make(map[string]user.User), nextID: 1}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[u.Email]; exists {
		return um_errors.ErrConflict
	}
	u.ID = r.nextID
	r.nextID++
	r.byEmail[u.Email] = *u
	return nil
}

func (r *memoryUserRepo) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return user.User{}, um_errors.ErrNotFound
}

func (r *memoryUserRepo) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, um_errors.ErrNotFound
}

func (r *memoryUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

func newTestRouter(t *testing.T, registerMode string) (*gin.Engine, *memoryUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 60,
		BcryptCost:   bcrypt.MinCost,
		RegisterMode: registerMode,
	}

	repo := newMemoryUserRepo()
	svc := services.NewAuthService(repo, cfg)
	h := NewAuthHandler(svc, nil)

	router := gin.New()
	router.POST("/api/register", h.Register)
	router.POST("/api/login", h.Login)
	router.GET("/api/me", middleware.AuthMiddleware(svc), h.Me)

	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("new user returns 201 with no sensitive data echoed", func(t *testing.T) {
		router, repo := newTestRouter(t, config.RegisterModeStrict)

		w := doJSON(t, router, http.MethodPost, "/api/register", gin.H{
			"first_name": "A", "last_name": "B", "email": "a@b.com", "password": "secret",
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, repo.count())
		assert.NotContains(t, w.Body.String(), "secret")
		assert.NotContains(t, w.Body.String(), "$2a$")
	})

	t.Run("duplicate email returns 409 and creates no second row", func(t *testing.T) {
		for _, mode := range []string{config.RegisterModeStrict, config.RegisterModeConstraintOnly} {
			t.Run(mode, func(t *testing.T) {
				router, repo := newTestRouter(t, mode)

				body := gin.H{"first_name": "A", "last_name": "B", "email": "a@b.com", "password": "secret"}
				first := doJSON(t, router, http.MethodPost, "/api/register", body, nil)
				second := doJSON(t, router, http.MethodPost, "/api/register", body, nil)

				assert.Equal(t, http.StatusCreated, first.Code)
				assert.Equal(t, http.StatusConflict, second.Code)
				assert.Equal(t, 1, repo.count())
			})
		}
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		router, repo := newTestRouter(t, config.RegisterModeStrict)

		w := doJSON(t, router, http.MethodPost, "/api/register", gin.H{
			"first_name": "A", "email": "a@b.com", "password": "secret",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, repo.count())
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t, config.RegisterModeStrict)

		req, _ := http.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func registerTestUser(t *testing.T, router *gin.Engine) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/register", gin.H{
		"first_name": "A", "last_name": "B", "email": "a@b.com", "password": "secret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
}

func loginResponse(t *testing.T, w *httptest.ResponseRecorder) (token string, userID int64) {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token  string `json:"token"`
			UserID int64  `json:"user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	return body.Data.Token, body.Data.UserID
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("correct credentials return 200 with a token", func(t *testing.T) {
		router, _ := newTestRouter(t, config.RegisterModeStrict)
		registerTestUser(t, router)

		w := doJSON(t, router, http.MethodPost, "/api/login", gin.H{
			"email": "a@b.com", "password": "secret",
		}, nil)

		require.Equal(t, http.StatusOK, w.Code)
		token, userID := loginResponse(t, w)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), userID)
	})

	t.Run("wrong password and unknown email return identical 401 bodies", func(t *testing.T) {
		router, _ := newTestRouter(t, config.RegisterModeStrict)
		registerTestUser(t, router)

		wrongPass := doJSON(t, router, http.MethodPost, "/api/login", gin.H{
			"email": "a@b.com", "password": "wrong",
		}, nil)
		unknown := doJSON(t, router, http.MethodPost, "/api/login", gin.H{
			"email": "nobody@b.com", "password": "secret",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		router, _ := newTestRouter(t, config.RegisterModeStrict)

		w := doJSON(t, router, http.MethodPost, "/api/login", gin.H{"email": "a@b.com"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("valid token returns the issuing user's record", func(t *testing.T) {
		router, _ := newTestRouter(t, config.RegisterModeStrict)
		registerTestUser(t, router)

		login := doJSON(t, router, http.MethodPost, "/api/login", gin.H{
			"email": "a@b.com", "password": "secret",
		}, nil)
		require.Equal(t, http.StatusOK, login.Code)
		token, userID := loginResponse(t, login)

		w := doJSON(t, router, http.MethodGet, "/api/me", nil, map[string]string{
			"Authorization": "Bearer " + token,
		})

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data struct {
				ID    int64  `json:"id"`
				Email string `json:"email"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, userID, body.Data.ID)
		assert.Equal(t, "a@b.com", body.Data.Email)
		assert.NotContains(t, w.Body.String(), "$2a$")
	})

	t.Run("missing or malformed bearer token returns 401", func(t *testing.T) {
		router, _ := newTestRouter(t, config.RegisterModeStrict)

		for _, header := range []map[string]string{
			nil,
			{"Authorization": "Bearer"},
			{"Authorization": "Bearer not-a-token"},
			{"Authorization": "Basic dXNlcjpwYXNz"},
		} {
			w := doJSON(t, router, http.MethodGet, "/api/me", nil, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		}
	})
}
