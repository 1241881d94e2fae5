package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/shared/event"
	"github.com/shandysiswandi/gopost/internal/user/entity"
)

type UpdateUserInput struct {
	Username    *string
	FullName    *string
	Email       *string
	DateOfBirth *string
}

// UpdateUserByID applies a partial update. It returns nil, nil when no user has the id.
func (s *Usecase) UpdateUserByID(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "UpdateUserByID")
	defer span.End()

	if err := s.validateUpdateUser(in); err != nil {
		return nil, err
	}

	dob, _ := parseDateOfBirth(in.DateOfBirth)

	user, err := s.repoDB.UpdateUserByID(ctx, id, entity.UserPatch{
		Username:    in.Username,
		Email:       in.Email,
		FullName:    in.FullName,
		DateOfBirth: dob,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user to update not found", "user_id", id)
		return nil, nil
	}
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "username already taken", "user_id", id)
		return nil, goerror.NewInvalidField("Unique field required: username")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update user", "user_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, event.UserUpdated, user.ID)

	return user, nil
}
