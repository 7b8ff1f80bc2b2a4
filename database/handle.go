package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Handle is the set of capabilities the query builder needs from a live
// database session.
type Handle interface {
	Prepare(ctx context.Context, query string) (PreparedStatement, error)
	LastInsertedID(ctx context.Context) (int64, error)
	// Placeholder returns the bind marker for the 1-based position.
	Placeholder(position int) string
	Close() error
}

type PreparedStatement interface {
	Execute(ctx context.Context, bindings []any) (Result, error)
	Close() error
}

// Result is fully buffered, fetching does not consume it.
type Result interface {
	FetchAll() ([]Row, error)
	FetchOne() (Row, error)
	AffectedRowCount() (int64, error)
}

type sqlHandle struct {
	driver          Driver
	db              *sql.DB
	conn            *sql.Conn
	lastInsertID    int64
	hasLastInsertID bool
	preRunFuncs     []func(ctx context.Context, statement string, args []any) error
	postRunFuncs    []func(ctx context.Context) error
}

func (handle *sqlHandle) Prepare(ctx context.Context, query string) (PreparedStatement, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrBlankQuery
	}

	stmt, err := handle.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &sqlStatement{
		handle:      handle,
		stmt:        stmt,
		query:       query,
		returnsRows: returnsRows(query),
	}, nil
}

func (handle *sqlHandle) LastInsertedID(ctx context.Context) (int64, error) {
	if query := handle.driver.lastInsertIDQuery(); query != "" {
		id := int64(0)
		if err := handle.conn.QueryRowContext(ctx, query).Scan(&id); err != nil {
			return 0, err
		}

		return id, nil
	}

	if !handle.hasLastInsertID {
		return 0, ErrNoLastInsertID
	}

	return handle.lastInsertID, nil
}

func (handle *sqlHandle) Placeholder(position int) string {
	return handle.driver.placeholder(position)
}

func (handle *sqlHandle) Close() error {
	return errors.Join(handle.conn.Close(), handle.db.Close())
}

type sqlStatement struct {
	handle      *sqlHandle
	stmt        *sql.Stmt
	query       string
	returnsRows bool
}

func (statement *sqlStatement) Execute(ctx context.Context, bindings []any) (Result, error) {
	for _, preRunFunc := range statement.handle.preRunFuncs {
		if err := preRunFunc(ctx, statement.query, bindings); err != nil {
			return nil, err
		}
	}

	var result Result
	if statement.returnsRows {
		rows, err := statement.runSelect(ctx, bindings)
		if err != nil {
			return nil, err
		}

		result = &bufferedResult{rows: rows, affected: int64(len(rows))}
	} else {
		affected, err := statement.runExecute(ctx, bindings)
		if err != nil {
			return nil, err
		}

		result = &bufferedResult{rows: []Row{}, affected: affected}
	}

	for _, postRunFunc := range statement.handle.postRunFuncs {
		if err := postRunFunc(ctx); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (statement *sqlStatement) runSelect(ctx context.Context, bindings []any) ([]Row, error) {
	rows, err := statement.stmt.QueryContext(ctx, bindings...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		scanFields := make([]any, len(columns))
		for i := range values {
			scanFields[i] = &values[i]
		}

		if err := rows.Scan(scanFields...); err != nil {
			return nil, err
		}

		row := Row{}
		for i, column := range columns {
			// Text columns come back as bytes from some drivers
			if raw, ok := values[i].([]byte); ok {
				row[column] = string(raw)
				continue
			}

			row[column] = values[i]
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (statement *sqlStatement) runExecute(ctx context.Context, bindings []any) (int64, error) {
	result, err := statement.stmt.ExecContext(ctx, bindings...)
	if err != nil {
		return 0, err
	}

	if statement.handle.driver.lastInsertIDQuery() == "" && isInsert(statement.query) {
		lastInsertID, err := result.LastInsertId()
		if err != nil {
			return 0, err
		}

		statement.handle.lastInsertID = lastInsertID
		statement.handle.hasLastInsertID = true
	}

	return result.RowsAffected()
}

func (statement *sqlStatement) Close() error {
	return statement.stmt.Close()
}

type bufferedResult struct {
	rows     []Row
	affected int64
}

func (result *bufferedResult) FetchAll() ([]Row, error) {
	return result.rows, nil
}

func (result *bufferedResult) FetchOne() (Row, error) {
	if len(result.rows) == 0 {
		return nil, nil
	}

	return result.rows[0], nil
}

func (result *bufferedResult) AffectedRowCount() (int64, error) {
	return result.affected, nil
}

func returnsRows(query string) bool {
	return hasKeyword(query, "SELECT")
}

func isInsert(query string) bool {
	return hasKeyword(query, "INSERT")
}

func hasKeyword(query string, keyword string) bool {
	return len(query) >= len(keyword) && strings.EqualFold(query[:len(keyword)], keyword)
}
