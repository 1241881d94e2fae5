package user

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/idempotency"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/messaging"
	"github.com/shandysiswandi/gopost/internal/pkg/router"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
	"github.com/shandysiswandi/gopost/internal/user/inbound"
	"github.com/shandysiswandi/gopost/internal/user/outbound/db"
	"github.com/shandysiswandi/gopost/internal/user/outbound/mq"
	"github.com/shandysiswandi/gopost/internal/user/usecase"
)

type Dependency struct {
	DBConn         *pgxpool.Pool              `validate:"required"`
	Router         *router.Router             `validate:"required"`
	Goroutine      *goroutine.Manager         `validate:"required"`
	Idempotency    idempotency.Idempotency    `validate:"required"`
	Messaging      messaging.Messaging        `validate:"required"`
	Posts          usecase.PostLister         `validate:"required"`
	Instrument     instrument.Instrumentation `validate:"required"`
	Clock          clock.Clocker              `validate:"required"`
	Validator      validator.Validator        `validate:"required"`
	IdempotencyTTL time.Duration
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Posts:         dep.Posts,
		Validator:     dep.Validator,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, router.Idempotent(dep.Idempotency, dep.IdempotencyTTL))

	return nil
}
