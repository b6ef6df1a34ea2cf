package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

// GetProfile returns the authenticated user's profile.
// A valid token for a user that no longer exists is treated as unauthorized.
func (s *Service) GetProfile(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "token for unknown user", slog.Int64("user_id", userID))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}

	return user, nil
}
