package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/shared/event"
)

type CreatePostInput struct {
	// UserID is nil when the caller sent no userId; a value that is not an
	// integer arrives as 0.
	UserID      *int64
	Title       *string
	Description *string
}

func (s *Usecase) CreatePost(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
	ctx, span := s.startSpan(ctx, "CreatePost")
	defer span.End()

	if err := s.validateCreatePost(in); err != nil {
		return nil, err
	}
	if err := s.validateUserID(in.UserID); err != nil {
		return nil, err
	}

	post, err := s.repoDB.CreatePost(ctx, entity.NewPost{
		Title:       lo.FromPtr(in.Title),
		Description: lo.FromPtr(in.Description),
		UserID:      *in.UserID,
	})
	if errors.Is(err, goerror.ErrInvalidReference) {
		slog.WarnContext(ctx, "post owner not found", "user_id", *in.UserID)
		return nil, goerror.NewInvalidField("No user by id found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create post", "user_id", *in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, event.PostCreated, post)

	return post, nil
}
