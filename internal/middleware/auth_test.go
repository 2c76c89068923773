package middleware

import (
	"context"
	"course_recommender/internal/model"
	"course_recommender/internal/util"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubUsers map[uint]bool

func (s stubUsers) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 500 {
		return false, errors.New("db down")
	}
	return s[id], nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": user.UserID})
	})
	r.GET("/", handlers...)
	return r
}

func do(t *testing.T, r http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, userID uint, role model.UserRole, ttl time.Duration) string {
	t.Helper()
	tok, err := util.GenerateJWT(userID, role, testSecret, ttl)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret))

	require.Equal(t, http.StatusUnauthorized, do(t, r, "").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, r, "garbage").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, r, token(t, 1, model.Student, -time.Minute)).Code)

	w := do(t, r, token(t, 7, model.Student, time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user":7}`, w.Body.String())
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret))
	req := httptest.NewRequest(http.MethodGet, "/?token="+token(t, 3, model.Student, time.Hour), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret), RoleMiddleware(model.Teacher))

	require.Equal(t, http.StatusForbidden, do(t, r, token(t, 1, model.Student, time.Hour)).Code)
	require.Equal(t, http.StatusOK, do(t, r, token(t, 1, model.Teacher, time.Hour)).Code)
	require.Equal(t, http.StatusOK, do(t, r, token(t, 1, model.Admin, time.Hour)).Code)
}

func TestActiveUserMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret), ActiveUserMiddleware(stubUsers{1: true}))

	require.Equal(t, http.StatusOK, do(t, r, token(t, 1, model.Student, time.Hour)).Code)
	require.Equal(t, http.StatusUnauthorized, do(t, r, token(t, 2, model.Student, time.Hour)).Code)
	require.Equal(t, http.StatusInternalServerError, do(t, r, token(t, 500, model.Student, time.Hour)).Code)
}
