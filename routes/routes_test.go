package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/controllers"
	"github.com/navbryce/heddit-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]string

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	uid, ok := f[idToken]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &auth.Token{UID: uid}, nil
}

type fakeUsers map[string]*model.User

func (f fakeUsers) CreateUser(ctx context.Context, user *model.User) error {
	f[user.Id] = user
	return nil
}

func (f fakeUsers) GetUser(ctx context.Context, id string) (*model.User, error) {
	return f[id], nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func newRouter() (*gin.Engine, fakeUsers) {
	gin.SetMode(gin.TestMode)
	users := fakeUsers{}
	verifier := fakeVerifier{"new-token": "new-uid", "alice-token": "alice"}
	users["alice"] = &model.User{Id: "alice", Username: "alice"}
	guards := NewGuards(users, verifier, nil)

	r := gin.New()
	AddHealthCheckRoutes(&r.RouterGroup)
	AddUserRoutes(&r.RouterGroup, users, controllers.NewUserController(users), verifier)
	// store-backed controllers are never reached by these requests
	AddCommunityRoutes(&r.RouterGroup, controllers.NewCommunityController(nil), guards)
	AddPostRoutes(&r.RouterGroup, controllers.NewPostController(nil, nil), controllers.NewVoteController(nil), guards)
	AddCommentRoutes(&r.RouterGroup, controllers.NewCommentController(nil), controllers.NewVoteController(nil), guards)
	return r, users
}

func do(r *gin.Engine, method, target, token, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var res envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &res)
	return rr, res
}

func TestHealth(t *testing.T) {
	r, _ := newRouter()
	rr, res := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, res.Success)
	assert.JSONEq(t, `{"alive":true}`, string(res.Data))
}

func TestRegisterUser(t *testing.T) {
	r, users := newRouter()

	rr, res := do(r, http.MethodPut, "/users", "", `{"username":"gopher"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, res.Success)

	rr, res = do(r, http.MethodPut, "/users", "new-token", `{"username":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Validation", res.Code)

	rr, res = do(r, http.MethodPut, "/users", "new-token", `{"username":"gopher"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, res.Success)
	assert.Equal(t, "gopher", users["new-uid"].Username)

	rr, res = do(r, http.MethodGet, "/users/me", "new-token", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var me model.User
	require.NoError(t, json.Unmarshal(res.Data, &me))
	assert.Equal(t, "new-uid", me.Id)
}

func TestWritesRequireSession(t *testing.T) {
	r, _ := newRouter()

	writes := []struct{ method, target string }{
		{http.MethodPut, "/communities"},
		{http.MethodPost, "/communities/1/join"},
		{http.MethodDelete, "/communities/1/moderators/bob"},
		{http.MethodPut, "/posts"},
		{http.MethodPost, "/posts/1/upvote"},
		{http.MethodPost, "/comments/1/remove-downvote"},
		{http.MethodDelete, "/comments/1"},
	}
	for _, w := range writes {
		rr, res := do(r, w.method, w.target, "", "{}")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, w.target)
		assert.False(t, res.Success, w.target)

		rr, _ = do(r, w.method, w.target, "new-token", "{}")
		assert.Equal(t, http.StatusForbidden, rr.Code, w.target)
	}
}

func TestMalformedIds(t *testing.T) {
	r, _ := newRouter()

	for _, target := range []string{"/posts/abc", "/posts/abc/upvote", "/comments/abc/downvote"} {
		method := http.MethodPost
		if target == "/posts/abc" {
			method = http.MethodGet
		}
		rr, res := do(r, method, target, "alice-token", "{}")
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		assert.Equal(t, "id malformed", res.Message, target)
	}
}

func TestReadsIgnoreForeignAuthSchemes(t *testing.T) {
	r, _ := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodPut, "/posts", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
