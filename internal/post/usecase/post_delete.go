package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/shared/event"
)

// DeletePostByID removes the post and returns it as it was. Deleting a missing
// post, including one already deleted, is a NO_RECORD error.
func (s *Usecase) DeletePostByID(ctx context.Context, id int64) (*entity.Post, error) {
	ctx, span := s.startSpan(ctx, "DeletePostByID")
	defer span.End()

	post, err := s.repoDB.DeletePostByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "post to delete not found", "post_id", id)
		return nil, goerror.NewNoRecord("No post by id found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete post", "post_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, event.PostDeleted, post)

	return post, nil
}
