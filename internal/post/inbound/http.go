package inbound

import (
	"context"

	"github.com/shandysiswandi/gopost/internal/pkg/router"
	"github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/post/usecase"
)

type uc interface {
	CreatePost(ctx context.Context, in usecase.CreatePostInput) (*entity.Post, error)
	GetPostByID(ctx context.Context, id int64) (*entity.Post, error)
	UpdatePostByID(ctx context.Context, id int64, in usecase.UpdatePostInput) (*entity.Post, error)
	DeletePostByID(ctx context.Context, id int64) (*entity.Post, error)
}

// RegisterHTTPEndpoint mounts the post routes. createMws wrap POST /api/posts only.
func RegisterHTTPEndpoint(r *router.Router, uc uc, createMws ...router.Middleware) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/posts", end.CreatePost, createMws...)
	r.GET("/api/posts/:id", end.GetPostByID)
	r.PUT("/api/posts/:id", end.UpdatePostByID)
	r.DELETE("/api/posts/:id", end.DeletePostByID)
}
