package querybuilder

type Operation int

const (
	operationNone Operation = iota
	OperationCreate
	OperationRead
	OperationUpdate
	OperationDelete
)

func (operation Operation) String() string {
	switch operation {
	case OperationCreate:
		return "CREATE"
	case OperationRead:
		return "READ"
	case OperationUpdate:
		return "UPDATE"
	case OperationDelete:
		return "DELETE"
	}

	return "NONE"
}

// Data maps column names to the values bound for them. Columns are always
// emitted in ascending order.
type Data map[string]any

type predicate struct {
	Field    string
	Operator string
	Value    any
}

// draft is the not yet executed description of one statement.
type draft struct {
	table      string
	operation  Operation
	fields     []string
	values     []any
	predicates []predicate
}

// bindings lists the bound values in the order placeholders are rendered:
// field values first, then one value per predicate.
func (d draft) bindings() []any {
	bindings := make([]any, 0, len(d.values)+len(d.predicates))
	bindings = append(bindings, d.values...)
	for _, p := range d.predicates {
		bindings = append(bindings, p.Value)
	}

	return bindings
}

// clear keeps the table so the next statement can reuse it.
func (d *draft) clear() {
	d.operation = operationNone
	d.fields = nil
	d.values = nil
	d.predicates = nil
}
