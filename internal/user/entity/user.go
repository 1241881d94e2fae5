package entity

import "time"

// User is the public profile of an account. Credentials never leave the auth module.
type User struct {
	ID          int64
	Username    string
	Email       *string
	FullName    *string
	DateOfBirth *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewUser struct {
	Username    string
	Email       *string
	FullName    *string
	DateOfBirth *time.Time
}

// UserPatch carries the fields of a partial update; nil leaves the column as is.
type UserPatch struct {
	Username    *string
	Email       *string
	FullName    *string
	DateOfBirth *time.Time
}
