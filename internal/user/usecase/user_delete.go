package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/shared/event"
	"github.com/shandysiswandi/gopost/internal/user/entity"
)

// DeleteUserByID removes the user, and through the foreign key its posts, and
// returns the user as it was. A missing user is a NO_RECORD error.
func (s *Usecase) DeleteUserByID(ctx context.Context, id int64) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "DeleteUserByID")
	defer span.End()

	user, err := s.repoDB.DeleteUserByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user to delete not found", "user_id", id)
		return nil, goerror.NewNoRecord("No user by id found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete user", "user_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, event.UserDeleted, user.ID)

	return user, nil
}
