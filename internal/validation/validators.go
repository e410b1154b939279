package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mesabjorn/anything-db/internal/domain/errors"
)

var (
	yesValues = []string{"true", "1", "t", "y", "yes"}
	noValues  = []string{"false", "0", "f", "n", "no"}
)

// identifierRegex accepts plain SQL identifiers (letters, digits, underscore, not starting with a digit)
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseBool maps an operator answer to true or false
// Values considered true: true, 1, t, y, yes (case insensitive)
// Values considered false: false, 0, f, n, no (case insensitive)
func ParseBool(answer string) (bool, error) {
	a := strings.ToLower(strings.TrimSpace(answer))
	for _, v := range yesValues {
		if a == v {
			return true, nil
		}
	}
	for _, v := range noValues {
		if a == v {
			return false, nil
		}
	}
	return false, &errors.ValidationError{
		Field: "answer",
		Value: answer,
		Message: fmt.Sprintf("cannot be mapped to either true or false, enter one of %s or %s",
			strings.Join(yesValues, ", "), strings.Join(noValues, ", ")),
	}
}

// ValidateIdentifier validates a table or column name entered by the operator
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return &errors.ValidationError{Field: kind, Value: name, Message: "name cannot be empty"}
	}
	if !identifierRegex.MatchString(name) {
		return &errors.ValidationError{
			Field:   kind,
			Value:   name,
			Message: fmt.Sprintf("'%s' must start with a letter or underscore and contain only letters, digits and underscores", name),
		}
	}
	if strings.HasPrefix(strings.ToLower(name), "sqlite_") {
		return &errors.ValidationError{Field: kind, Value: name, Message: "names starting with 'sqlite_' are reserved"}
	}
	return nil
}
