package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/session"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Cookie *http.Cookie
}

// Login checks the password and opens a session. Every way of failing to
// authenticate, missing fields included, yields goerror.ErrInvalidCredential.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validateCredentials(in.Username, in.Password); err != nil {
		return nil, goerror.ErrInvalidCredential
	}

	cred, err := s.repoDB.GetCredentialByUsername(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown username", "username", in.Username)
		return nil, goerror.ErrInvalidCredential
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get credential", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.hasher.Verify(cred.Salt, cred.Hash, in.Password) {
		slog.WarnContext(ctx, "login password mismatch", "user_id", cred.UserID)
		return nil, goerror.ErrInvalidCredential
	}

	cookie, err := s.sessions.Issue(ctx, session.Identity{UserID: cred.UserID, Username: cred.Username})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session", "user_id", cred.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{Cookie: cookie}, nil
}
