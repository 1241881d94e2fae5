package app

import (
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/gopost/internal/auth"
	"github.com/shandysiswandi/gopost/internal/post"
	"github.com/shandysiswandi/gopost/internal/user"
)

// initModules mounts the feature modules. Users depend on posts for the
// /api/users/:id/posts listing, so posts are always built first.
func (a *App) initModules() error {
	idempotencyTTL := a.config.GetSecond("idempotency.ttl_seconds")

	posts, err := post.New(post.Dependency{
		DBConn:         a.dbConn,
		Router:         a.router,
		Goroutine:      a.goroutine,
		Idempotency:    a.idemp,
		Messaging:      a.messaging,
		Instrument:     a.ins,
		Clock:          a.clock,
		Validator:      a.validator,
		IdempotencyTTL: idempotencyTTL,
	})
	if err != nil {
		return fmt.Errorf("module post: %w", err)
	}

	if a.config.GetBool("modules.user.enabled") {
		if err := user.New(user.Dependency{
			DBConn:         a.dbConn,
			Router:         a.router,
			Goroutine:      a.goroutine,
			Idempotency:    a.idemp,
			Messaging:      a.messaging,
			Posts:          posts,
			Instrument:     a.ins,
			Clock:          a.clock,
			Validator:      a.validator,
			IdempotencyTTL: idempotencyTTL,
		}); err != nil {
			return fmt.Errorf("module user: %w", err)
		}
	}

	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Sessions:   a.sessions,
			Hasher:     a.pbkdf2,
			Goroutine:  a.goroutine,
			Messaging:  a.messaging,
			Instrument: a.ins,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			return fmt.Errorf("module auth: %w", err)
		}
	}

	slog.Info("modules initialized",
		"user", a.config.GetBool("modules.user.enabled"),
		"auth", a.config.GetBool("modules.auth.enabled"),
	)

	return nil
}
