package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/post/entity"
)

// GetPostByID returns nil, nil when no post has the id.
func (s *Usecase) GetPostByID(ctx context.Context, id int64) (*entity.Post, error) {
	ctx, span := s.startSpan(ctx, "GetPostByID")
	defer span.End()

	post, err := s.repoDB.GetPostByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post by id", "post_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return post, nil
}

// ListPostsByUserID returns the posts of a user ordered by id. An unknown user has no posts.
func (s *Usecase) ListPostsByUserID(ctx context.Context, userID int64) ([]entity.Post, error) {
	ctx, span := s.startSpan(ctx, "ListPostsByUserID")
	defer span.End()

	posts, err := s.repoDB.ListPostsByUserID(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list posts by user", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return posts, nil
}
