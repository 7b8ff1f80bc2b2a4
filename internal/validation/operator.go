package validation

import "fmt"

var allowedOperators = map[string]bool{
	"=":  true,
	">":  true,
	"<":  true,
	">=": true,
	"<=": true,
	"<>": true,
}

type OperatorError struct {
	Operator string
}

func (e OperatorError) Error() string {
	return fmt.Sprintf("operator %q not in allowed list", e.Operator)
}

func Operator(operator string) error {
	if !allowedOperators[operator] {
		return OperatorError{Operator: operator}
	}

	return nil
}
