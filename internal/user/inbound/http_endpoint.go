package inbound

import (
	"github.com/shandysiswandi/gopost/internal/pkg/router"
	"github.com/shandysiswandi/gopost/internal/user/usecase"
)

// HTTPEndpoint exposes HTTP handlers for users.
type HTTPEndpoint struct {
	uc uc
}

// CreateUser registers a user profile.
// @Summary Create user
// @Tags User
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} router.successResponse{data=UserResponse} "Created user"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 409 {object} router.errorResponse "Duplicate Idempotency-Key"
// @Failure 500 "Internal server error"
// @Router /api/users [post]
func (h *HTTPEndpoint) CreateUser(r *router.Request) (any, error) {
	var req CreateUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := h.uc.CreateUser(r.Context(), usecase.CreateUserInput{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return nil, err
	}

	return CreateUserResponse(NewUserResponse(*user)), nil
}

// GetUserByID returns a user.
// @Summary Get user
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=UserResponse} "User"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.successResponse "No user with the id, data is null"
// @Failure 500 "Internal server error"
// @Router /api/users/{id} [get]
func (h *HTTPEndpoint) GetUserByID(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	user, err := h.uc.GetUserByID(r.Context(), id)
	if err != nil || user == nil {
		return nil, err
	}

	return NewUserResponse(*user), nil
}

// UpdateUserByID patches the supplied fields of a user.
// @Summary Update user
// @Tags User
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} router.successResponse{data=UserResponse} "Updated user"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 404 {object} router.successResponse "No user with the id, data is null"
// @Failure 500 "Internal server error"
// @Router /api/users/{id} [put]
func (h *HTTPEndpoint) UpdateUserByID(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := h.uc.UpdateUserByID(r.Context(), id, usecase.UpdateUserInput{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil || user == nil {
		return nil, err
	}

	return NewUserResponse(*user), nil
}

// DeleteUserByID deletes a user together with their posts.
// @Summary Delete user
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=DeleteUserResponse} "Deleted user"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "NO_RECORD"
// @Failure 500 "Internal server error"
// @Router /api/users/{id} [delete]
func (h *HTTPEndpoint) DeleteUserByID(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	user, err := h.uc.DeleteUserByID(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return DeleteUserResponse{User: NewUserResponse(*user)}, nil
}

// GetUserPosts lists the posts of a user.
// @Summary List user posts
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=UserPostsResponse} "Posts ordered by id"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 500 "Internal server error"
// @Router /api/users/{id}/posts [get]
func (h *HTTPEndpoint) GetUserPosts(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	posts, err := h.uc.GetUserPosts(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return NewUserPostsResponse(posts), nil
}
