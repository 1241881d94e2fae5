package post

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
	"github.com/shandysiswandi/gopost/internal/post/inbound"
	"github.com/shandysiswandi/gopost/internal/post/outbound/db"
	"github.com/shandysiswandi/gopost/internal/post/outbound/mq"
	"github.com/shandysiswandi/gopost/internal/post/usecase"
)

type Dependency struct {
	DBConn         *pgxpool.Pool              `validate:"required"`
	Router         *router.Router             `validate:"required"`
	Goroutine      *goroutine.Manager         `validate:"required"`
	Idempotency    idempotency.Idempotency    `validate:"required"`
	Messaging      messaging.Messaging        `validate:"required"`
	Instrument     instrument.Instrumentation `validate:"required"`
	Clock          clock.Clocker              `validate:"required"`
	Validator      validator.Validator        `validate:"required"`
	IdempotencyTTL time.Duration
}

// New wires the post module and returns its usecase so other modules can
// read posts without going through HTTP.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Validator:     dep.Validator,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, router.Idempotent(dep.Idempotency, dep.IdempotencyTTL))

	return uc, nil
}
