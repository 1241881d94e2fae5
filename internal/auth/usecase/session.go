package usecase

import (
	"context"

	"github.com/shandysiswandi/gopost/internal/auth/entity"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/session"
)

// Session returns who the request's session belongs to.
func (s *Usecase) Session(ctx context.Context) (*entity.Identity, error) {
	_, span := s.startSpan(ctx, "Session")
	defer span.End()

	cur, ok := session.FromContext(ctx)
	if !ok {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return &entity.Identity{UserID: cur.Identity.UserID, Username: cur.Identity.Username}, nil
}
