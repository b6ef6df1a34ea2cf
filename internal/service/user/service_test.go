package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func newTestService(repo *mockUserRepo) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func TestService_GetProfile(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Email: "learner@example.com"}, nil
		},
	}

	got, err := newTestService(repo).GetProfile(ctxutil.WithUserID(context.Background(), 9))
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "learner@example.com", got.Email)
}

func TestService_GetProfile_Errors(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection refused")
	tests := []struct {
		name    string
		ctx     context.Context
		repoErr error
		wantErr error
	}{
		{name: "anonymous", ctx: context.Background(), wantErr: domain.ErrUnauthorized},
		{name: "deleted user", ctx: ctxutil.WithUserID(context.Background(), 9), repoErr: domain.ErrNotFound, wantErr: domain.ErrUnauthorized},
		{name: "store failure", ctx: ctxutil.WithUserID(context.Background(), 9), repoErr: dbErr, wantErr: dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockUserRepo{
				GetByIDFunc: func(_ context.Context, _ int64) (*domain.User, error) {
					return nil, tt.repoErr
				},
			}
			_, err := newTestService(repo).GetProfile(tt.ctx)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
