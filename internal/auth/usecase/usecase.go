package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/gopost/internal/auth/entity"
	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/hash"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/session"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserCreatedEvent struct {
	UserID     int64
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishUserCreated(ctx context.Context, ev UserCreatedEvent) error
}

type repoDB interface {
	CreateCredential(ctx context.Context, in entity.NewCredential) (int64, error)
	GetCredentialByUsername(ctx context.Context, username string) (*entity.Credential, error)
}

type sessions interface {
	Issue(ctx context.Context, identity session.Identity) (*http.Cookie, error)
	Revoke(ctx context.Context, id string) (*http.Cookie, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	sessions      sessions
	hasher        hash.Salted
	validator     validator.Validator
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Sessions      sessions
	Hasher        hash.Salted
	Validator     validator.Validator
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		sessions:      dep.Sessions,
		hasher:        dep.Hasher,
		validator:     dep.Validator,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) publishUserCreated(ctx context.Context, userID int64) {
	ev := UserCreatedEvent{UserID: userID, OccurredAt: s.clock.Now()}

	scheduled := s.goroutine.Go(ctx, "user.created", func(ctx context.Context) error {
		return s.repoMessaging.PublishUserCreated(ctx, ev)
	})
	if !scheduled {
		slog.WarnContext(ctx, "user event dropped", "event", "user.created", "user_id", userID)
	}
}
