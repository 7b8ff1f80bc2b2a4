package querybuilder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/lunagic/quill/database"
	"github.com/lunagic/quill/internal/validation"
	"github.com/lunagic/quill/quilltools"
)

// Builder accumulates one statement at a time against a single handle.
// It is not safe for concurrent use.
type Builder struct {
	handle        database.Handle
	logger        *slog.Logger
	draft         draft
	err           error
	statement     database.PreparedStatement
	result        database.Result
	lastOperation Operation
}

func New(handle database.Handle, configFuncs ...BuilderConfigFunc) *Builder {
	builder := &Builder{
		handle: handle,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, configFunc := range configFuncs {
		configFunc(builder)
	}

	return builder
}

// Open connects the connection and builds on its handle.
func Open(
	ctx context.Context,
	connection *database.Connection,
	configFuncs ...BuilderConfigFunc,
) (*Builder, error) {
	if _, err := connection.Connect(ctx); err != nil {
		return nil, err
	}

	handle, err := connection.Handle()
	if err != nil {
		return nil, err
	}

	return New(handle, configFuncs...), nil
}

func (builder *Builder) Table(name string) *Builder {
	if builder.err != nil {
		return builder
	}

	if name == "" {
		builder.err = ErrEmptyTable
		return builder
	}

	if err := validation.Identifier(name); err != nil {
		builder.err = fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
		return builder
	}

	builder.draft.table = name

	return builder
}

// Create inserts data into the current table straight away.
func (builder *Builder) Create(ctx context.Context, data Data) error {
	builder.forgetResult()

	if err := builder.takeErr(); err != nil {
		return err
	}

	if builder.draft.table == "" {
		return ErrEmptyTable
	}

	fields, values, err := splitData(data)
	if err != nil {
		return err
	}

	builder.draft.operation = OperationCreate
	builder.draft.fields = fields
	builder.draft.values = values
	builder.draft.predicates = nil

	return builder.Do(ctx)
}

// Read selects the given columns, all of them when none are given. It only
// runs on Do.
func (builder *Builder) Read(fields ...string) *Builder {
	if builder.err != nil {
		return builder
	}

	if len(fields) == 0 {
		fields = []string{"*"}
	}

	for _, field := range fields {
		if err := validation.Column(field); err != nil {
			builder.err = fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
			return builder
		}
	}

	builder.draft.operation = OperationRead
	builder.draft.fields = slices.Clone(fields)
	builder.draft.values = nil

	return builder
}

// Update adds the assignments in data to the SET clause. Repeated calls
// accumulate. It only runs on Do.
func (builder *Builder) Update(data Data) *Builder {
	if builder.err != nil {
		return builder
	}

	fields, values, err := splitData(data)
	if err != nil {
		builder.err = err
		return builder
	}

	if builder.draft.operation != OperationUpdate {
		builder.draft.fields = nil
		builder.draft.values = nil
	}

	builder.draft.operation = OperationUpdate
	builder.draft.fields = append(builder.draft.fields, fields...)
	builder.draft.values = append(builder.draft.values, values...)

	return builder
}

// Delete only runs on Do.
func (builder *Builder) Delete() *Builder {
	if builder.err != nil {
		return builder
	}

	builder.draft.operation = OperationDelete
	builder.draft.fields = nil
	builder.draft.values = nil

	return builder
}

func (builder *Builder) Where(field string, value any) *Builder {
	return builder.WhereOp(field, "=", value)
}

// WhereOp adds a condition, conditions are joined with AND in call order.
func (builder *Builder) WhereOp(field string, operator string, value any) *Builder {
	if builder.err != nil {
		return builder
	}

	if err := validation.Operator(operator); err != nil {
		builder.err = fmt.Errorf("%w: %w", ErrInvalidOperator, err)
		return builder
	}

	if err := validation.Identifier(field); err != nil {
		builder.err = fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
		return builder
	}

	builder.draft.predicates = append(builder.draft.predicates, predicate{
		Field:    field,
		Operator: operator,
		Value:    value,
	})

	return builder
}

func (builder *Builder) Find(ctx context.Context, id any) error {
	return builder.FindBy(ctx, "id", id)
}

func (builder *Builder) FindBy(ctx context.Context, field string, value any) error {
	return builder.Read("*").Where(field, value).Do(ctx)
}

// Do renders, prepares and executes the current statement. The statement is
// cleared only when it succeeds, the previous results are dropped either way.
func (builder *Builder) Do(ctx context.Context) error {
	builder.forgetResult()

	if err := builder.takeErr(); err != nil {
		return err
	}

	if builder.draft.table == "" {
		return ErrEmptyTable
	}

	query, bindings, err := builder.render()
	if err != nil {
		return err
	}

	builder.logger.DebugContext(ctx, "Query Builder Do",
		"operation", builder.draft.operation.String(),
		"table", builder.draft.table,
		"statement", query,
	)

	statement, err := builder.handle.Prepare(ctx, query)
	if err != nil {
		return err
	}
	builder.statement = statement

	result, err := statement.Execute(ctx, bindings)
	if err != nil {
		return errors.Join(err, builder.closeStatement())
	}

	builder.result = result
	builder.lastOperation = builder.draft.operation
	builder.draft.clear()

	return builder.closeStatement()
}

// Get returns the rows of the last read, empty for anything else.
func (builder *Builder) Get() ([]database.Row, error) {
	if builder.result == nil || builder.lastOperation != OperationRead {
		return []database.Row{}, nil
	}

	return builder.result.FetchAll()
}

// First returns the first row of the last read, nil when there is none.
func (builder *Builder) First() (database.Row, error) {
	if builder.result == nil || builder.lastOperation != OperationRead {
		return nil, nil
	}

	return builder.result.FetchOne()
}

// Count returns the rows affected or returned by the last statement.
func (builder *Builder) Count() (int64, error) {
	if builder.result == nil {
		return 0, nil
	}

	return builder.result.AffectedRowCount()
}

func (builder *Builder) LastInsertedID(ctx context.Context) (int64, error) {
	if builder.lastOperation != OperationCreate {
		return 0, ErrNotCreated
	}

	return builder.handle.LastInsertedID(ctx)
}

// SQL renders the current statement without running it.
func (builder *Builder) SQL() (string, []any, error) {
	if builder.err != nil {
		return "", nil, builder.err
	}

	if builder.draft.table == "" {
		return "", nil, ErrEmptyTable
	}

	return builder.render()
}

// Err reports the first chained error that has not been returned yet.
func (builder *Builder) Err() error {
	return builder.err
}

// Reset throws away the current statement, its table and any pending error.
func (builder *Builder) Reset() *Builder {
	builder.err = nil
	builder.draft = draft{}

	return builder
}

func (builder *Builder) takeErr() error {
	err := builder.err
	builder.err = nil

	return err
}

// forgetResult drops what the previous statement returned, results only ever
// describe the statement that ran last.
func (builder *Builder) forgetResult() {
	builder.result = nil
	builder.lastOperation = operationNone
}

func (builder *Builder) closeStatement() error {
	if builder.statement == nil {
		return nil
	}

	err := builder.statement.Close()
	builder.statement = nil

	return err
}

func splitData(data Data) ([]string, []any, error) {
	if len(data) == 0 {
		return nil, nil, ErrNoFields
	}

	fields := quilltools.SortedKeys(data)
	for _, field := range fields {
		if err := validation.Identifier(field); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
		}
	}

	values := quilltools.Map(fields, func(field string) any {
		return data[field]
	})

	return fields, values, nil
}
