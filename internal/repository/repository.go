package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned on unique or foreign key violations.
	ErrConflict = errors.New("record conflicts with existing data")

	// ErrInvalidValue is returned when a value does not fit its column.
	ErrInvalidValue = errors.New("value does not fit column")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgStringTruncation    = "22001"
	pgNumericOutOfRange   = "22003"
)

//go:embed schema.sql
var schemaSQL string

// Store is the PostgreSQL data access layer. All entity repositories share
// one pool so that RunAtomic can span several of them.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates missing tables. It is idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// RunAtomic executes fn within a transaction. Repository calls made with
// the context passed to fn run on that transaction; it is committed when fn
// returns nil and rolled back otherwise.
func (s *Store) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}

	return nil
}

type txKey struct{}

func (s *Store) getExecutor(ctx context.Context) PgxExecutor {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.db
}

// PgxExecutor is an interface that matches both *pgxpool.Pool and pgx.Tx
type PgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Detail)
		case pgStringTruncation, pgNumericOutOfRange:
			return fmt.Errorf("%w: %s", ErrInvalidValue, pgErr.Message)
		}
	}
	return err
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
// A "?" in a condition is replaced by the next $n placeholder.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, cond)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// search adds an ILIKE over every column with the same pattern. The term
// matches literally; LIKE wildcards in it are escaped.
func (w *whereBuilder) search(term string, columns ...string) {
	if term == "" {
		return
	}
	w.args = append(w.args, "%"+likeEscaper.Replace(term)+"%")
	placeholder := fmt.Sprintf("$%d", len(w.args))
	ors := make([]string, len(columns))
	for i, c := range columns {
		ors[i] = fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, c, placeholder)
	}
	w.clauses = append(w.clauses, "("+strings.Join(ors, " OR ")+")")
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause and args.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func (s *Store) count(ctx context.Context, from string, w *whereBuilder) (int64, error) {
	var total int64
	err := s.getExecutor(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM "+from+w.String(), w.args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", from, err)
	}
	return total, nil
}

// queryAll runs a query and collects every row into T by column name.
func queryAll[T any](ctx context.Context, ex PgxExecutor, sql string, args ...any) ([]T, error) {
	rows, err := ex.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

// queryOne runs a query expected to return exactly one row.
func queryOne[T any](ctx context.Context, ex PgxExecutor, sql string, args ...any) (*T, error) {
	rows, err := ex.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		return nil, classify(err)
	}
	return v, nil
}
