package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/modules/user"
	"github.com/Sudhikumaran/ripple-ai/pkg/creations"
	"github.com/Sudhikumaran/ripple-ai/pkg/identity"
)

type envelope struct {
	Success   bool                 `json:"success"`
	Message   string               `json:"message"`
	Creations []creations.Creation `json:"creations"`
}

type env struct {
	store    *creations.MemoryStore
	verifier *identity.Verifier
	server   *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	v, err := identity.NewVerifier(identity.Config{Secret: "s"})
	require.NoError(t, err)

	e := &env{store: creations.NewMemoryStore(), verifier: v}
	r := chi.NewRouter()
	r.With(identity.Middleware(v, nil)).Mount("/api/user", user.NewService(e.store).Handle())
	e.server = httptest.NewServer(r)
	t.Cleanup(e.server.Close)
	return e
}

func (e *env) insert(t *testing.T, owner, prompt string, publish bool) creations.Creation {
	t.Helper()
	c, err := e.store.Insert(context.Background(), creations.NewCreation{
		UserID: owner, Prompt: prompt, Content: "c", Type: creations.TypeArticle, Publish: publish,
	})
	require.NoError(t, err)
	return c
}

func (e *env) do(t *testing.T, method, account, path, body string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+"/api/user"+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if account != "" {
		token, err := e.verifier.Sign(account, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestGetUserCreations(t *testing.T) {
	t.Parallel()

	t.Run("own creations newest first", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		first := e.insert(t, "u1", "first", false)
		e.insert(t, "u2", "other", true)
		second := e.insert(t, "u1", "second", false)

		status, body := e.do(t, http.MethodGet, "u1", "/get-user-creations", "")
		require.Equal(t, http.StatusOK, status)
		assert.True(t, body.Success)
		require.Len(t, body.Creations, 2)
		assert.Equal(t, second.ID, body.Creations[0].ID)
		assert.Equal(t, first.ID, body.Creations[1].ID)
	})

	t.Run("empty list renders as array", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		status, body := e.do(t, http.MethodGet, "u1", "/get-user-creations", "")
		require.Equal(t, http.StatusOK, status)
		assert.True(t, body.Success)
		assert.NotNil(t, body.Creations)
		assert.Empty(t, body.Creations)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		status, body := e.do(t, http.MethodGet, "", "/get-user-creations", "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, body.Success)
	})
}

func TestGetPublishedCreations(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.insert(t, "u1", "hidden", false)
	shared := e.insert(t, "u2", "shared", true)

	status, body := e.do(t, http.MethodGet, "u1", "/get-published-creations", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Creations, 1)
	assert.Equal(t, shared.ID, body.Creations[0].ID)
}

func TestToggleLikeCreation(t *testing.T) {
	t.Parallel()

	t.Run("like then unlike", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		c := e.insert(t, "u2", "shared", true)
		body := `{"id":` + jsonInt(c.ID) + `}`

		status, out := e.do(t, http.MethodPost, "u1", "/toggle-like-creation", body)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, user.MsgLiked, out.Message)

		_, feed := e.do(t, http.MethodGet, "u1", "/get-published-creations", "")
		require.Len(t, feed.Creations, 1)
		assert.Equal(t, []string{"u1"}, feed.Creations[0].Likes)

		status, out = e.do(t, http.MethodPost, "u1", "/toggle-like-creation", body)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, user.MsgUnliked, out.Message)
	})

	t.Run("string id is accepted", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		c := e.insert(t, "u2", "shared", true)

		status, out := e.do(t, http.MethodPost, "u1", "/toggle-like-creation", `{"id":"`+jsonInt(c.ID)+`"}`)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, user.MsgLiked, out.Message)
	})

	t.Run("unknown creation", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		status, out := e.do(t, http.MethodPost, "u1", "/toggle-like-creation", `{"id":999}`)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Creation not found", out.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		status, out := e.do(t, http.MethodPost, "u1", "/toggle-like-creation", `{"id":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, out.Success)
	})
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
