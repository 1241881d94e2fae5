package db

import (
	"context"
	"testing"

	"github.com/shandysiswandi/gopost/internal/auth/entity"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Credentials(t *testing.T) {
	pool := testkit.Postgres(t)
	ctx := context.Background()
	s := NewDB(pool, instrument.NewNoop())

	id, err := s.CreateCredential(ctx, entity.NewCredential{Username: "jane", Salt: "ab", Hash: "cd"})
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = s.CreateCredential(ctx, entity.NewCredential{Username: "jane", Salt: "x", Hash: "y"})
	assert.ErrorIs(t, err, goerror.ErrConflict)

	cred, err := s.GetCredentialByUsername(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, entity.Credential{UserID: id, Username: "jane", Salt: "ab", Hash: "cd"}, *cred)

	_, err = s.GetCredentialByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	_, err = pool.Exec(ctx, `INSERT INTO users (username, email) VALUES ('profile', 'p@example.com')`)
	require.NoError(t, err)

	cred, err = s.GetCredentialByUsername(ctx, "profile")
	require.NoError(t, err)
	assert.Empty(t, cred.Salt)
	assert.Empty(t, cred.Hash)
}
