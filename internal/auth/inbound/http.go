package inbound

import (
	"context"

	"github.com/shandysiswandi/gopost/internal/auth/entity"
	"github.com/shandysiswandi/gopost/internal/auth/usecase"
	"github.com/shandysiswandi/gopost/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context) (*usecase.LogoutOutput, error)
	Session(ctx context.Context) (*entity.Identity, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/auth/signup", end.Signup)
	r.POST("/api/auth/login", end.Login)
	r.POST("/api/auth/logout", end.Logout)
	r.GET("/api/auth/session", end.Session)
}
