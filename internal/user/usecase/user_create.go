package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/shared/event"
	"github.com/shandysiswandi/gopost/internal/user/entity"
)

type CreateUserInput struct {
	Username    *string
	FullName    *string
	Email       *string
	DateOfBirth *string
}

func (s *Usecase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer span.End()

	if err := s.validateCreateUser(in); err != nil {
		return nil, err
	}

	dob, _ := parseDateOfBirth(in.DateOfBirth)
	username := lo.FromPtr(in.Username)

	user, err := s.repoDB.CreateUser(ctx, entity.NewUser{
		Username:    username,
		Email:       in.Email,
		FullName:    in.FullName,
		DateOfBirth: dob,
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "username already taken", "username", username)
		return nil, goerror.NewInvalidField("Unique field required: username")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, event.UserCreated, user.ID)

	return user, nil
}
