package inbound

import (
	"github.com/shandysiswandi/gopost/internal/pkg/router"
	"github.com/shandysiswandi/gopost/internal/post/usecase"
)

// HTTPEndpoint exposes HTTP handlers for posts.
type HTTPEndpoint struct {
	uc uc
}

// CreatePost creates a post owned by userId.
// @Summary Create post
// @Tags Post
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body CreatePostRequest true "Post payload"
// @Success 201 {object} router.successResponse{data=PostResponse} "Created post"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 409 {object} router.errorResponse "Duplicate Idempotency-Key"
// @Failure 500 "Internal server error"
// @Router /api/posts [post]
func (h *HTTPEndpoint) CreatePost(r *router.Request) (any, error) {
	var req CreatePostRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	post, err := h.uc.CreatePost(r.Context(), usecase.CreatePostInput{
		UserID:      req.UserID.ptr(),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return CreatePostResponse(NewPostResponse(*post)), nil
}

// GetPostByID returns a post.
// @Summary Get post
// @Tags Post
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} router.successResponse{data=PostResponse} "Post"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.successResponse "No post with the id, data is null"
// @Failure 500 "Internal server error"
// @Router /api/posts/{id} [get]
func (h *HTTPEndpoint) GetPostByID(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	post, err := h.uc.GetPostByID(r.Context(), id)
	if err != nil || post == nil {
		return nil, err
	}

	return NewPostResponse(*post), nil
}

// UpdatePostByID patches the title and/or description of a post.
// @Summary Update post
// @Tags Post
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} router.successResponse{data=PostResponse} "Updated post"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 404 {object} router.successResponse "No post with the id, data is null"
// @Failure 500 "Internal server error"
// @Router /api/posts/{id} [put]
func (h *HTTPEndpoint) UpdatePostByID(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdatePostRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	post, err := h.uc.UpdatePostByID(r.Context(), id, usecase.UpdatePostInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil || post == nil {
		return nil, err
	}

	return NewPostResponse(*post), nil
}

// DeletePostByID deletes a post.
// @Summary Delete post
// @Tags Post
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} router.successResponse{data=DeletePostResponse} "Deleted post"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "NO_RECORD"
// @Failure 500 "Internal server error"
// @Router /api/posts/{id} [delete]
func (h *HTTPEndpoint) DeletePostByID(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	post, err := h.uc.DeletePostByID(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return DeletePostResponse{Post: NewPostResponse(*post)}, nil
}
