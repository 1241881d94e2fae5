package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	postentity "github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/user/entity"
)

// GetUserByID returns nil, nil when no user has the id.
func (s *Usecase) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer span.End()

	user, err := s.repoDB.GetUserByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}

// GetUserPosts lists the posts written by a user; an unknown user has none.
func (s *Usecase) GetUserPosts(ctx context.Context, id int64) ([]postentity.Post, error) {
	ctx, span := s.startSpan(ctx, "GetUserPosts")
	defer span.End()

	posts, err := s.posts.ListPostsByUserID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list user posts", "user_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return posts, nil
}
