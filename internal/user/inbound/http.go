package inbound

import (
	"context"

	"github.com/shandysiswandi/gopost/internal/pkg/router"
	postentity "github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/user/entity"
	"github.com/shandysiswandi/gopost/internal/user/usecase"
)

type uc interface {
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	UpdateUserByID(ctx context.Context, id int64, in usecase.UpdateUserInput) (*entity.User, error)
	DeleteUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserPosts(ctx context.Context, id int64) ([]postentity.Post, error)
}

// RegisterHTTPEndpoint mounts the user routes. createMws wrap POST /api/users only.
func RegisterHTTPEndpoint(r *router.Router, uc uc, createMws ...router.Middleware) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/users", end.CreateUser, createMws...)
	r.GET("/api/users/:id", end.GetUserByID)
	r.PUT("/api/users/:id", end.UpdateUserByID)
	r.DELETE("/api/users/:id", end.DeleteUserByID)
	r.GET("/api/users/:id/posts", end.GetUserPosts)
}
