/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/suparena/modelrepo/repository"
)

// Repository implements repository.Repository[T] over a SQLite database. The
// table schema is derived from T's fields and created idempotently at
// construction; every write runs inside its own transaction and releases it on
// every exit path.
type Repository[T any] struct {
	db     *sql.DB
	schema *tableSchema
}

// New opens (or creates) the database at connectionString and binds a
// repository for model type T, creating its table when missing.
func New[T any](connectionString string) (*Repository[T], error) {
	s, err := schemaOf[T]()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(s.ddl(reflect.TypeOf((*T)(nil)).Elem())); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", s.table, err)
	}

	return &Repository[T]{db: db, schema: s}, nil
}

var _ repository.Repository[struct{ ID int64 }] = (*Repository[struct{ ID int64 }])(nil)

// Close releases the underlying database handle.
func (r *Repository[T]) Close() error {
	return r.db.Close()
}

// Create inserts one row built from the attribute map. A uniqueness-constraint
// violation rolls back and resolves to absence.
func (r *Repository[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
	model := new(T)
	if err := repository.Decode(data, model); err != nil {
		slog.Error("sqlite create failed to decode data", "table", r.schema.table, "err", err)
		return nil, err
	}

	names := make([]string, 0, len(r.schema.cols))
	marks := make([]string, 0, len(r.schema.cols))
	args := make([]any, 0, len(r.schema.cols))
	v := reflect.ValueOf(model).Elem()
	for _, col := range r.schema.cols {
		names = append(names, col.name)
		marks = append(marks, "?")
		args = append(args, v.Field(col.index).Interface())
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.schema.table, strings.Join(names, ", "), strings.Join(marks, ", "))
	if len(names) == 0 {
		// Id-only model: there are no columns to list.
		stmt = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", r.schema.table)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	res, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		tx.Rollback()
		if isConstraintViolation(err) {
			slog.Error("sqlite create constraint violation", "table", r.schema.table, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", r.schema.table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		if isConstraintViolation(err) {
			slog.Error("sqlite create constraint violation", "table", r.schema.table, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to commit insert into %s: %w", r.schema.table, err)
	}

	v.Field(r.schema.idIndex).SetInt(id)
	return model, nil
}

// GetByID fetches one row by primary key. A non-numeric id resolves to absent.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Debug("sqlite get_by_id with non-numeric id", "table", r.schema.table, "id", id)
		return nil, nil
	}
	models, err := r.selectModels(ctx, "id = ?", []any{pk}, nil)
	if err != nil {
		slog.Error("sqlite get_by_id failed", "table", r.schema.table, "id", id, "err", err)
		return nil, nil
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0], nil
}

// FindOne returns the first matching row in storage order.
func (r *Repository[T]) FindOne(ctx context.Context, query repository.Predicate) (*T, error) {
	where, args, ok := r.buildWhere(query)
	if !ok {
		return nil, nil
	}
	one := int64(1)
	models, err := r.selectModels(ctx, where, args, &repository.FindOptions{Limit: &one})
	if err != nil {
		slog.Error("sqlite find_one failed", "table", r.schema.table, "err", err)
		return nil, nil
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0], nil
}

// FindAll returns every matching row, applying OFFSET before LIMIT.
func (r *Repository[T]) FindAll(ctx context.Context, query repository.Predicate, opts *repository.FindOptions) ([]*T, error) {
	where, args, ok := r.buildWhere(query)
	if !ok {
		return []*T{}, nil
	}
	models, err := r.selectModels(ctx, where, args, opts)
	if err != nil {
		slog.Error("sqlite find_all failed", "table", r.schema.table, "err", err)
		return []*T{}, nil
	}
	return models, nil
}

// Update fetches the row, applies only the supplied attributes and commits.
// A missing id resolves to absent; a constraint violation rolls back and
// resolves to absent.
func (r *Repository[T]) Update(ctx context.Context, id string, updates map[string]any) (*T, error) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Debug("sqlite update with non-numeric id", "table", r.schema.table, "id", id)
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	model, err := r.scanOne(tx.QueryRowContext(ctx, r.selectSQL("id = ?"), pk))
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Error("sqlite update lookup failed", "table", r.schema.table, "id", id, "err", err)
		return nil, nil
	}
	if err := repository.Decode(updates, model); err != nil {
		tx.Rollback()
		slog.Error("sqlite update failed to decode data", "table", r.schema.table, "id", id, "err", err)
		return nil, err
	}

	sets := make([]string, 0, len(r.schema.cols))
	args := make([]any, 0, len(r.schema.cols)+1)
	v := reflect.ValueOf(model).Elem()
	for _, col := range r.schema.cols {
		sets = append(sets, col.name+" = ?")
		args = append(args, v.Field(col.index).Interface())
	}
	args = append(args, pk)

	// A model whose only column is the primary key has nothing to SET.
	if len(sets) == 0 {
		tx.Rollback()
		return model, nil
	}

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.schema.table, strings.Join(sets, ", ")),
		args...); err != nil {
		tx.Rollback()
		if isConstraintViolation(err) {
			slog.Error("sqlite update constraint violation", "table", r.schema.table, "id", id, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update %s: %w", r.schema.table, err)
	}
	if err := tx.Commit(); err != nil {
		if isConstraintViolation(err) {
			slog.Error("sqlite update constraint violation", "table", r.schema.table, "id", id, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to commit update of %s: %w", r.schema.table, err)
	}
	return model, nil
}

// Delete removes the row by primary key, reporting whether one existed.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Debug("sqlite delete with non-numeric id", "table", r.schema.table, "id", id)
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.schema.table), pk)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", r.schema.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of matching rows.
func (r *Repository[T]) Count(ctx context.Context, query repository.Predicate) (int64, error) {
	where, args, ok := r.buildWhere(query)
	if !ok {
		return 0, nil
	}
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.schema.table)
	if where != "" {
		q += " WHERE " + where
	}
	var n int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		slog.Error("sqlite count failed", "table", r.schema.table, "err", err)
		return 0, nil
	}
	return n, nil
}

// buildWhere compiles a predicate to an equality conjunction over known
// columns. A predicate naming an unknown column can match nothing; the third
// result is false in that case.
func (r *Repository[T]) buildWhere(query repository.Predicate) (string, []any, bool) {
	if len(query) == 0 {
		return "", nil, true
	}
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	terms := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for _, name := range names {
		if name == "id" {
			terms = append(terms, "id = ?")
			args = append(args, query[name])
			continue
		}
		col, ok := r.schema.byName[name]
		if !ok {
			slog.Error("sqlite predicate names unknown column", "table", r.schema.table, "column", name)
			return "", nil, false
		}
		terms = append(terms, col.name+" = ?")
		args = append(args, query[name])
	}
	return strings.Join(terms, " AND "), args, true
}

func (r *Repository[T]) selectSQL(where string) string {
	names := make([]string, 0, len(r.schema.cols)+1)
	names = append(names, "id")
	for _, col := range r.schema.cols {
		names = append(names, col.name)
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), r.schema.table)
	if where != "" {
		q += " WHERE " + where
	}
	return q
}

func (r *Repository[T]) selectModels(ctx context.Context, where string, args []any, opts *repository.FindOptions) ([]*T, error) {
	q := r.selectSQL(where)

	// SQLite requires a LIMIT clause to use OFFSET; -1 means unbounded.
	switch {
	case opts != nil && opts.Limit != nil:
		q += " LIMIT ?"
		args = append(args, *opts.Limit)
	case opts != nil && opts.Skip != nil:
		q += " LIMIT -1"
	}
	if opts != nil && opts.Skip != nil {
		q += " OFFSET ?"
		args = append(args, *opts.Skip)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []*T
	for rows.Next() {
		model, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if models == nil {
		models = []*T{}
	}
	return models, nil
}

func (r *Repository[T]) scanOne(row interface{ Scan(...any) error }) (*T, error) {
	model := new(T)
	v := reflect.ValueOf(model).Elem()
	dests := make([]any, 0, len(r.schema.cols)+1)
	dests = append(dests, v.Field(r.schema.idIndex).Addr().Interface())
	for _, col := range r.schema.cols {
		dests = append(dests, v.Field(col.index).Addr().Interface())
	}
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}
	return model, nil
}

func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "constraint")
}
