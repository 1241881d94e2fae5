package db

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/testkit"
	"github.com/shandysiswandi/gopost/internal/user/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_UserLifecycle(t *testing.T) {
	pool := testkit.Postgres(t)
	ctx := context.Background()
	s := NewDB(pool, instrument.NewNoop())

	dob := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	created, err := s.CreateUser(ctx, entity.NewUser{
		Username:    "alice",
		Email:       lo.ToPtr("alice@example.com"),
		DateOfBirth: &dob,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Nil(t, created.FullName)
	require.NotNil(t, created.DateOfBirth)
	assert.True(t, dob.Equal(*created.DateOfBirth))

	_, err = s.CreateUser(ctx, entity.NewUser{Username: "alice"})
	assert.ErrorIs(t, err, goerror.ErrConflict)

	got, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	updated, err := s.UpdateUserByID(ctx, created.ID, entity.UserPatch{FullName: lo.ToPtr("Alice A.")})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", lo.FromPtr(updated.FullName))
	assert.Equal(t, "alice@example.com", lo.FromPtr(updated.Email))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	bob, err := s.CreateUser(ctx, entity.NewUser{Username: "bob"})
	require.NoError(t, err)
	_, err = s.UpdateUserByID(ctx, bob.ID, entity.UserPatch{Username: lo.ToPtr("alice")})
	assert.ErrorIs(t, err, goerror.ErrConflict)

	_, err = s.UpdateUserByID(ctx, 999999, entity.UserPatch{FullName: lo.ToPtr("x")})
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	deleted, err := s.DeleteUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.DeleteUserByID(ctx, created.ID)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	_, err = s.GetUserByID(ctx, created.ID)
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}
