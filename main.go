package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shandysiswandi/gopost/internal/app"
)

// @title           Gopost API
// @version         1.0
// @description     Gopost manages users and their posts, with cookie session signup and login.
// @server          http://localhost:8080
func main() {
	application := app.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	runErr := application.Run(ctx)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	application.Stop(shutdownCtx)
	cancel()

	if runErr != nil {
		slog.Error("application exited", "error", runErr)
		os.Exit(1)
	}
}
