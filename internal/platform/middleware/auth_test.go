package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsaratour/service-booking/internal/platform/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTManager, *auth.SessionTracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("secret", time.Hour)
	sessions := auth.NewSessionTracker(time.Hour)
	authorizer, err := auth.NewAuthorizer(context.Background())
	require.NoError(t, err)

	r := gin.New()
	g := r.Group("/", AuthMiddleware(jwtManager, sessions))
	g.GET("/drafts", RequirePermission(authorizer, auth.ResourceDrafts), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.String(http.StatusOK, userID+":"+auth.AccessTokenFromContext(c.Request.Context())[:3])
	})
	g.GET("/dashboard", RequirePermission(authorizer, auth.ResourceDashboard), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwtManager, sessions
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_RequiresActiveSession(t *testing.T) {
	r, jwtManager, sessions := newTestRouter(t)
	token, err := jwtManager.Generate("7", "", auth.RoleSecretary)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/drafts", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/drafts", token).Code)

	sessions.Start("7")
	w := doGet(r, "/drafts", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7:"+token[:3], w.Body.String())
}

func TestRequirePermission_SecretaryCannotSeeDashboard(t *testing.T) {
	r, jwtManager, sessions := newTestRouter(t)
	sessions.Start("7")
	sessions.Start("1")

	secretary, _ := jwtManager.Generate("7", "", auth.RoleSecretary)
	admin, _ := jwtManager.Generate("1", "", auth.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/dashboard", secretary).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/dashboard", admin).Code)
}
