package entity

import "time"

type Post struct {
	ID          int64
	Title       string
	Description string
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewPost struct {
	Title       string
	Description string
	UserID      int64
}

// PostPatch carries the fields of a partial update; nil leaves the column as is.
type PostPatch struct {
	Title       *string
	Description *string
}
