package inbound

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/gopost/internal/post/entity"
)

// UserIDField accepts userId as a JSON number or a numeric string. Anything
// else decodes to 0 so validation reports it instead of the JSON decoder.
type UserIDField struct {
	Value int64
}

func (f *UserIDField) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		raw = bytes.TrimSpace([]byte(s))
	}

	if v, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		f.Value = v
	}
	return nil
}

func (f *UserIDField) ptr() *int64 {
	if f == nil {
		return nil
	}
	v := f.Value
	return &v
}

type CreatePostRequest struct {
	UserID      *UserIDField `json:"userId"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
}

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type PostResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreatePostResponse PostResponse

func (CreatePostResponse) StatusCode() int {
	return http.StatusCreated
}

type DeletePostResponse struct {
	Post PostResponse `json:"post"`
}

func NewPostResponse(p entity.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
