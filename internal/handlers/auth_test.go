package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miniblog/apiserver/internal/services"
	"github.com/miniblog/apiserver/internal/store"
	"github.com/miniblog/apiserver/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// ---- fake repository ----

type fakeUserRepo struct {
	users map[string]types.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]types.User)}
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	if f.err != nil {
		return types.User{}, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if f.err != nil {
		return types.User{}, f.err
	}
	if _, ok := f.users[user.Username]; ok {
		return types.User{}, store.ErrConflict
	}
	f.users[user.Username] = user
	return user, nil
}

func newAuthHandler(repo *fakeUserRepo) *AuthHandler {
	return NewAuthHandler(services.NewUserService(repo), testSecret)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// ---- register ----

func TestRegisterCreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	h := newAuthHandler(repo)

	rec := postJSON(t, h.Register, RegisterRequest{Username: "alice", Password: "secret"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "alice", body["username"])
	require.NotEmpty(t, body["id"])
	require.NotContains(t, body, "password")

	stored, ok := repo.users["alice"]
	require.True(t, ok)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestRegisterMissingFields(t *testing.T) {
	h := newAuthHandler(newFakeUserRepo())

	for _, req := range []RegisterRequest{
		{},
		{Username: "alice"},
		{Password: "secret"},
	} {
		rec := postJSON(t, h.Register, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	h := newAuthHandler(repo)

	rec := postJSON(t, h.Register, RegisterRequest{Username: "alice", Password: "secret"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, RegisterRequest{Username: "alice", Password: "other"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Len(t, repo.users, 1)
}

func TestRegisterStoreError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = context.DeadlineExceeded
	h := newAuthHandler(repo)

	rec := postJSON(t, h.Register, RegisterRequest{Username: "alice", Password: "secret"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- login ----

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) types.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := types.User{ID: "u1", Username: username, PasswordHash: string(hashed)}
	repo.users[username] = user
	return user
}

func TestLoginReturnsVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice", "secret")
	h := newAuthHandler(repo)

	rec := postJSON(t, h.Login, LoginRequest{Username: "alice", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	identity, err := parseToken(resp.Token, []byte(testSecret))
	require.NoError(t, err)
	require.Equal(t, user.ID, identity.UserID)
	require.Equal(t, "alice", identity.Username)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "secret")
	h := newAuthHandler(repo)

	wrongPassword := postJSON(t, h.Login, LoginRequest{Username: "alice", Password: "nope"})
	unknownUser := postJSON(t, h.Login, LoginRequest{Username: "bob", Password: "secret"})

	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	require.Equal(t, http.StatusBadRequest, unknownUser.Code)
	// Identical bodies so callers cannot tell which check failed.
	require.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLoginStoreError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = context.DeadlineExceeded
	h := newAuthHandler(repo)

	rec := postJSON(t, h.Login, LoginRequest{Username: "alice", Password: "secret"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- tokens and the auth gate ----

func TestParseTokenRejectsExpired(t *testing.T) {
	user := types.User{ID: "u1", Username: "alice"}
	token, err := issueToken(user, []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	_, err = parseToken(token, []byte(testSecret))
	require.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	user := types.User{ID: "u1", Username: "alice"}
	token, err := issueToken(user, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	_, err = parseToken(token, []byte(testSecret))
	require.Error(t, err)
}

func gateProbe(t *testing.T, token string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()
	var seen *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := identityFromContext(r.Context())
		require.NoError(t, err)
		seen = &identity
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	RequireAuth(testSecret)(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireAuthMissingToken(t *testing.T) {
	rec, seen := gateProbe(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, seen)
}

func TestRequireAuthGarbageToken(t *testing.T) {
	rec, seen := gateProbe(t, "not-a-token")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Nil(t, seen)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, err := issueToken(types.User{ID: "u1", Username: "alice"}, []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	rec, seen := gateProbe(t, token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Nil(t, seen)
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	token, err := issueToken(types.User{ID: "u1", Username: "alice"}, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	rec, seen := gateProbe(t, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	require.Equal(t, "u1", seen.UserID)
	require.Equal(t, "alice", seen.Username)
}
