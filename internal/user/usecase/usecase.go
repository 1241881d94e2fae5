package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
	postentity "github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/user/entity"
	"go.opentelemetry.io/otel/trace"
)

type UserEvent struct {
	Name       string
	UserID     int64
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishUserEvent(ctx context.Context, ev UserEvent) error
}

type repoDB interface {
	CreateUser(ctx context.Context, in entity.NewUser) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	UpdateUserByID(ctx context.Context, id int64, in entity.UserPatch) (*entity.User, error)
	DeleteUserByID(ctx context.Context, id int64) (*entity.User, error)
}

// PostLister is the slice of the post module the user module reads from.
type PostLister interface {
	ListPostsByUserID(ctx context.Context, userID int64) ([]postentity.Post, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	posts         PostLister
	validator     validator.Validator
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Posts         PostLister
	Validator     validator.Validator
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		posts:         dep.Posts,
		validator:     dep.Validator,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("user.usecase").Start(ctx, name)
}

func (s *Usecase) publish(ctx context.Context, name string, userID int64) {
	ev := UserEvent{Name: name, UserID: userID, OccurredAt: s.clock.Now()}

	scheduled := s.goroutine.Go(ctx, name, func(ctx context.Context) error {
		return s.repoMessaging.PublishUserEvent(ctx, ev)
	})
	if !scheduled {
		slog.WarnContext(ctx, "user event dropped", "event", name, "user_id", userID)
	}
}
