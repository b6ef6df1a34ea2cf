package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

func TestUser_Me(t *testing.T) {
	t.Parallel()

	users := &mockUsers{
		GetProfileFunc: func(ctx context.Context) (*domain.User, error) {
			id, ok := ctxutil.UserIDFromCtx(ctx)
			require.True(t, ok)
			return &domain.User{ID: id, Email: "ann@example.com", Name: ptr("Ann"), CreatedAt: testNow}, nil
		},
	}

	rec := do(t, newTestRouter(services{users: users}), http.MethodGet, "/api/me", "", testUserID)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[meResponse](t, rec)
	assert.Equal(t, testUserID, body.ID)
	assert.Equal(t, "ann@example.com", body.Email)
	require.NotNil(t, body.Name)
	assert.Equal(t, "Ann", *body.Name)
}

func TestUser_Me_Anonymous(t *testing.T) {
	t.Parallel()

	users := &mockUsers{
		GetProfileFunc: func(context.Context) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	rec := do(t, newTestRouter(services{users: users}), http.MethodGet, "/api/me", "", 0)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
