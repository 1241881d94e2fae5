package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/shared/event"
)

type UpdatePostInput struct {
	Title       *string
	Description *string
}

// UpdatePostByID applies a partial update. It returns nil, nil when no post has the id.
func (s *Usecase) UpdatePostByID(ctx context.Context, id int64, in UpdatePostInput) (*entity.Post, error) {
	ctx, span := s.startSpan(ctx, "UpdatePostByID")
	defer span.End()

	if err := s.validateUpdatePost(in); err != nil {
		return nil, err
	}

	post, err := s.repoDB.UpdatePostByID(ctx, id, entity.PostPatch{
		Title:       in.Title,
		Description: in.Description,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "post to update not found", "post_id", id)
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update post", "post_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, event.PostUpdated, post)

	return post, nil
}
