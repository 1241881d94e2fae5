package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/auth/entity"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
)

type SignupInput struct {
	Username string
	Password string
}

func (s *Usecase) Signup(ctx context.Context, in SignupInput) error {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	if err := s.validateCredentials(in.Username, in.Password); err != nil {
		return err
	}

	salt, hashed, err := s.hasher.Derive(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to derive credential", "error", err)
		return goerror.NewServer(err)
	}

	userID, err := s.repoDB.CreateCredential(ctx, entity.NewCredential{
		Username: in.Username,
		Salt:     salt,
		Hash:     hashed,
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "username already taken", "username", in.Username)
		return goerror.NewInvalidField("Unique field required: username")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create credential", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	s.publishUserCreated(ctx, userID)

	return nil
}
