package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
	"github.com/shandysiswandi/gopost/internal/post/entity"
	"go.opentelemetry.io/otel/trace"
)

type PostEvent struct {
	Name       string
	PostID     int64
	UserID     int64
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishPostEvent(ctx context.Context, ev PostEvent) error
}

type repoDB interface {
	CreatePost(ctx context.Context, in entity.NewPost) (*entity.Post, error)
	GetPostByID(ctx context.Context, id int64) (*entity.Post, error)
	ListPostsByUserID(ctx context.Context, userID int64) ([]entity.Post, error)
	UpdatePostByID(ctx context.Context, id int64, in entity.PostPatch) (*entity.Post, error)
	DeletePostByID(ctx context.Context, id int64) (*entity.Post, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("post.usecase").Start(ctx, name)
}

// publish ships a lifecycle event in the background; the request never waits on the broker.
func (s *Usecase) publish(ctx context.Context, name string, post *entity.Post) {
	ev := PostEvent{Name: name, PostID: post.ID, UserID: post.UserID, OccurredAt: s.clock.Now()}

	scheduled := s.goroutine.Go(ctx, name, func(ctx context.Context) error {
		return s.repoMessaging.PublishPostEvent(ctx, ev)
	})
	if !scheduled {
		slog.WarnContext(ctx, "post event dropped", "event", name, "post_id", post.ID)
	}
}
