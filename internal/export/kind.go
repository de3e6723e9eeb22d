package export

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/calview-cli/internal/variables"
)

// Kind selects which side of the selected variables is exported.
type Kind string

const (
	KindError Kind = "Error"
	KindValue Kind = "Value"
)

// ParseKind accepts "error" or "value", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return KindError, nil
	case "value":
		return KindValue, nil
	default:
		return "", fmt.Errorf("unsupported kind %q (use error or value)", s)
	}
}

// column returns the variable's column of this kind, or "" when it has none.
func (k Kind) column(v *variables.Variable) string {
	if k == KindError {
		return v.ErrorColumn
	}
	return v.ValueColumn
}
