package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gopost/internal/auth/inbound"
	"github.com/shandysiswandi/gopost/internal/auth/outbound/db"
	"github.com/shandysiswandi/gopost/internal/auth/outbound/mq"
	"github.com/shandysiswandi/gopost/internal/auth/usecase"
	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/hash"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/messaging"
	"github.com/shandysiswandi/gopost/internal/pkg/router"
	"github.com/shandysiswandi/gopost/internal/pkg/session"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Sessions   *session.Manager           `validate:"required"`
	Hasher     hash.Salted                `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Sessions:      dep.Sessions,
		Hasher:        dep.Hasher,
		Validator:     dep.Validator,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
