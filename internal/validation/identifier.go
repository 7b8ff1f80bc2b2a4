package validation

import (
	"fmt"
	"regexp"
)

var identifierFinder = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

type IdentifierError struct {
	Identifier string
}

func (e IdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q", e.Identifier)
}

// Identifier only accepts plain or table qualified names since identifiers
// are the only user input written into the SQL text.
func Identifier(identifier string) error {
	if !identifierFinder.MatchString(identifier) {
		return IdentifierError{Identifier: identifier}
	}

	return nil
}

// Column is Identifier plus the "*" wildcard.
func Column(column string) error {
	if column == "*" {
		return nil
	}

	return Identifier(column)
}
