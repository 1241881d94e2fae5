package usecase

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/session"
)

type LogoutOutput struct {
	Cookie *http.Cookie
}

// Logout ends the caller's session, if any, and returns a cookie that clears it.
func (s *Usecase) Logout(ctx context.Context) (*LogoutOutput, error) {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	cur, _ := session.FromContext(ctx)

	cookie, err := s.sessions.Revoke(ctx, cur.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to destroy session", "user_id", cur.Identity.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LogoutOutput{Cookie: cookie}, nil
}
