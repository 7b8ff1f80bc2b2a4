package quilltest

import (
	"context"
	"fmt"
	"slices"

	"github.com/lunagic/quill/database"
)

// Execution is one statement run through a Handle.
type Execution struct {
	Statement string
	Bindings  []any
}

// Handle is an in-memory database.Handle that records what it is asked to
// run and answers with the canned Rows.
type Handle struct {
	NumberedPlaceholders bool
	Rows                 []database.Row
	Affected             int64
	InsertID             int64
	PrepareErr           error
	ExecuteErr           error

	Executions []Execution
	Open       int
	Closed     bool
}

func (handle *Handle) Prepare(ctx context.Context, query string) (database.PreparedStatement, error) {
	if handle.PrepareErr != nil {
		return nil, handle.PrepareErr
	}

	if query == "" {
		return nil, database.ErrBlankQuery
	}

	handle.Open++

	return &statement{handle: handle, query: query}, nil
}

func (handle *Handle) LastInsertedID(ctx context.Context) (int64, error) {
	if handle.InsertID == 0 {
		return 0, database.ErrNoLastInsertID
	}

	return handle.InsertID, nil
}

func (handle *Handle) Placeholder(position int) string {
	if handle.NumberedPlaceholders {
		return fmt.Sprintf("$%d", position)
	}

	return "?"
}

func (handle *Handle) Close() error {
	handle.Closed = true
	return nil
}

// Last returns the most recent execution.
func (handle *Handle) Last() Execution {
	if len(handle.Executions) == 0 {
		return Execution{}
	}

	return handle.Executions[len(handle.Executions)-1]
}

type statement struct {
	handle *Handle
	query  string
}

func (statement *statement) Execute(ctx context.Context, bindings []any) (database.Result, error) {
	if statement.handle.ExecuteErr != nil {
		return nil, statement.handle.ExecuteErr
	}

	statement.handle.Executions = append(statement.handle.Executions, Execution{
		Statement: statement.query,
		Bindings:  slices.Clone(bindings),
	})

	rows := slices.Clone(statement.handle.Rows)
	if rows == nil {
		rows = []database.Row{}
	}

	affected := statement.handle.Affected
	if affected == 0 {
		affected = int64(len(rows))
	}

	return result{rows: rows, affected: affected}, nil
}

func (statement *statement) Close() error {
	statement.handle.Open--
	return nil
}

type result struct {
	rows     []database.Row
	affected int64
}

func (r result) FetchAll() ([]database.Row, error) {
	return r.rows, nil
}

func (r result) FetchOne() (database.Row, error) {
	if len(r.rows) == 0 {
		return nil, nil
	}

	return r.rows[0], nil
}

func (r result) AffectedRowCount() (int64, error) {
	return r.affected, nil
}
