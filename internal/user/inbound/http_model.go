package inbound

import (
	"net/http"
	"time"

	postentity "github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/user/entity"
)

type CreateUserRequest struct {
	Username    *string `json:"username"`
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	DateOfBirth *string `json:"dateOfBirth" example:"1990-04-02"`
}

type UpdateUserRequest struct {
	Username    *string `json:"username"`
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	DateOfBirth *string `json:"dateOfBirth"`
}

type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       *string    `json:"email"`
	FullName    *string    `json:"fullName"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateUserResponse UserResponse

func (CreateUserResponse) StatusCode() int {
	return http.StatusCreated
}

type DeleteUserResponse struct {
	User UserResponse `json:"user"`
}

type PostResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserPostsResponse struct {
	Posts []PostResponse `json:"posts"`
}

func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		DateOfBirth: u.DateOfBirth,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func NewUserPostsResponse(posts []postentity.Post) UserPostsResponse {
	resp := UserPostsResponse{Posts: make([]PostResponse, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, PostResponse{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			UserID:      p.UserID,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return resp
}
