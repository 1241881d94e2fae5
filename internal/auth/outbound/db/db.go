package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gopost/internal/auth/entity"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/pgxdb"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

type credentialRow struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Salt     string `db:"salt"`
	Hash     string `db:"hash"`
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !pgxdb.Expected(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// CreateCredential inserts a user carrying only a username and password material.
func (s *DB) CreateCredential(ctx context.Context, in entity.NewCredential) (id int64, err error) {
	ctx, span := s.startSpan(ctx, "CreateCredential")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.QueryRow(ctx,
		`INSERT INTO users (username, salt, hash) VALUES ($1, $2, $3) RETURNING id`,
		in.Username, in.Salt, in.Hash,
	).Scan(&id)
	if err != nil {
		return 0, pgxdb.MapError(err)
	}

	return id, nil
}

func (s *DB) GetCredentialByUsername(ctx context.Context, username string) (_ *entity.Credential, err error) {
	ctx, span := s.startSpan(ctx, "GetCredentialByUsername")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT id, username, COALESCE(salt, '') AS salt, COALESCE(hash, '') AS hash
		FROM users WHERE username = $1`,
		username,
	)
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[credentialRow])
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	return &entity.Credential{
		UserID:   row.ID,
		Username: row.Username,
		Salt:     row.Salt,
		Hash:     row.Hash,
	}, nil
}
