package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/pgxdb"
	"github.com/shandysiswandi/gopost/internal/post/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const postColumns = "id, title, description, user_id, created_at, updated_at"

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

type postRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	UserID      int64     `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r postRow) entity() entity.Post {
	return entity.Post{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("post.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !pgxdb.Expected(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) queryOne(ctx context.Context, sql string, args ...any) (*entity.Post, error) {
	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	post := row.entity()
	return &post, nil
}

func (s *DB) CreatePost(ctx context.Context, in entity.NewPost) (_ *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "CreatePost")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx,
		`INSERT INTO posts (title, description, user_id) VALUES ($1, $2, $3) RETURNING `+postColumns,
		in.Title, in.Description, in.UserID,
	)
}

func (s *DB) GetPostByID(ctx context.Context, id int64) (_ *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "GetPostByID")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
}

func (s *DB) ListPostsByUserID(ctx context.Context, userID int64) (_ []entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "ListPostsByUserID")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		return nil, pgxdb.MapError(err)
	}

	posts := make([]entity.Post, 0, len(result))
	for _, r := range result {
		posts = append(posts, r.entity())
	}
	return posts, nil
}

func (s *DB) UpdatePostByID(ctx context.Context, id int64, in entity.PostPatch) (_ *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "UpdatePostByID")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx,
		`UPDATE posts SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			updated_at = now()
		WHERE id = $1
		RETURNING `+postColumns,
		id, in.Title, in.Description,
	)
}

func (s *DB) DeletePostByID(ctx context.Context, id int64) (_ *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "DeletePostByID")
	defer func() { s.endSpan(span, err) }()

	return s.queryOne(ctx, `DELETE FROM posts WHERE id = $1 RETURNING `+postColumns, id)
}
