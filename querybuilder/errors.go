package querybuilder

import "errors"

var (
	ErrEmptyTable        = errors.New("querybuilder: table is empty")
	ErrInvalidOperator   = errors.New("querybuilder: invalid operator")
	ErrInvalidOperation  = errors.New("querybuilder: invalid operation")
	ErrInvalidIdentifier = errors.New("querybuilder: invalid identifier")
	ErrNoFields          = errors.New("querybuilder: no fields")
	ErrNotCreated        = errors.New("querybuilder: last statement was not a create")
)
