package querybuilder

import (
	"fmt"
	"strings"

	"github.com/lunagic/quill/quilltools"
)

func (builder *Builder) render() (string, []any, error) {
	d := builder.draft

	position := 0
	placeholder := func() string {
		position++
		return builder.handle.Placeholder(position)
	}

	where := func() string {
		if len(d.predicates) == 0 {
			return ""
		}

		conditions := quilltools.Map(d.predicates, func(p predicate) string {
			return p.Field + p.Operator + placeholder()
		})

		return " WHERE " + strings.Join(conditions, " AND ")
	}

	switch d.operation {
	case OperationCreate:
		placeholders := quilltools.Map(d.fields, func(string) string {
			return placeholder()
		})

		return fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			d.table,
			strings.Join(d.fields, ", "),
			strings.Join(placeholders, ", "),
		), d.bindings(), nil
	case OperationRead:
		query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(d.fields, ", "), d.table)

		return query + where(), d.bindings(), nil
	case OperationUpdate:
		assignments := quilltools.Map(d.fields, func(field string) string {
			return field + "=" + placeholder()
		})
		query := fmt.Sprintf("UPDATE %s SET %s", d.table, strings.Join(assignments, ", "))

		return query + where(), d.bindings(), nil
	case OperationDelete:
		query := fmt.Sprintf("DELETE FROM %s", d.table)

		return query + where(), d.bindings(), nil
	}

	return "", nil, fmt.Errorf("%w: %s", ErrInvalidOperation, d.operation)
}
