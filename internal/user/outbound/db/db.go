package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/pgxdb"
	"github.com/shandysiswandi/gopost/internal/user/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Credential columns (salt, hash) are never selected by this repository.
const userColumns = "id, username, email, full_name, date_of_birth, created_at, updated_at"

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

type userRow struct {
	ID          int64      `db:"id"`
	Username    string     `db:"username"`
	Email       *string    `db:"email"`
	FullName    *string    `db:"full_name"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("user.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !pgxdb.Expected(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) queryOne(ctx context.Context, sql string, args ...any) (*entity.User, error) {
	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	return &entity.User{
		ID:          row.ID,
		Username:    row.Username,
		Email:       row.Email,
		FullName:    row.FullName,
		DateOfBirth: row.DateOfBirth,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx,
		`INSERT INTO users (username, email, full_name, date_of_birth)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		in.Username, in.Email, in.FullName, in.DateOfBirth,
	)
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *DB) UpdateUserByID(ctx context.Context, id int64, in entity.UserPatch) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserByID")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx,
		`UPDATE users SET
			username = COALESCE($2, username),
			email = COALESCE($3, email),
			full_name = COALESCE($4, full_name),
			date_of_birth = COALESCE($5, date_of_birth),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, in.Username, in.Email, in.FullName, in.DateOfBirth,
	)
}

// DeleteUserByID removes the row; posts follow through ON DELETE CASCADE.
func (s *DB) DeleteUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "DeleteUserByID")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
}
