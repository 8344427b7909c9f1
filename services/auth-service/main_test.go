package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chandabaj-reporting-system/pkg/middleware"
	"chandabaj-reporting-system/services/auth-service/models"
	"chandabaj-reporting-system/services/auth-service/store"
	"chandabaj-reporting-system/services/auth-service/utils"
)

type fakeUserStore struct {
	byID map[string]*models.User
}

func (f *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Create(u *models.User) error {
	f.byID[u.ID] = u
	return nil
}

func callMe(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	middleware.AuthMiddleware(meHandler)(rec, req)
	return rec
}

func TestMeFailsClosedWithoutProfileRow(t *testing.T) {
	users = &fakeUserStore{byID: map[string]*models.User{}}

	// The token verifies fine, but no profile row backs it.
	token, err := utils.GenerateJWT("ghost-id", "ghost@example.com", "Ghost", "user")
	require.NoError(t, err)

	rec := callMe(t, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Status string                 `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Empty(t, resp.Data, "no profile payload may leak for an orphaned token")
}

func TestMeReturnsProfile(t *testing.T) {
	users = &fakeUserStore{byID: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "karim@example.com", Name: "Karim", Role: "user"},
	}}

	token, err := utils.GenerateJWT("user-1", "karim@example.com", "Karim", "user")
	require.NoError(t, err)

	rec := callMe(t, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string      `json:"status"`
		Data   models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "karim@example.com", resp.Data.Email)
}

func TestMeRejectsMissingToken(t *testing.T) {
	users = &fakeUserStore{byID: map[string]*models.User{}}

	rec := callMe(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
