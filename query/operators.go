package query

import "fmt"

// Operator is a filter comparison.
type Operator int

const (
	EqualTo Operator = iota
	LessThan
	LessThanOrEqualTo
	GreaterThan
	GreaterThanOrEqualTo
	Like
)

// SQL tokens.
const (
	OpEqual              = "="
	OpLessThan           = "<"
	OpLessThanOrEqual    = "<="
	OpGreaterThan        = ">"
	OpGreaterThanOrEqual = ">="
	OpLike               = "LIKE"
)

// Token returns the SQL token for op.
func (op Operator) Token() (string, error) {
	switch op {
	case EqualTo:
		return OpEqual, nil
	case LessThan:
		return OpLessThan, nil
	case LessThanOrEqualTo:
		return OpLessThanOrEqual, nil
	case GreaterThan:
		return OpGreaterThan, nil
	case GreaterThanOrEqualTo:
		return OpGreaterThanOrEqual, nil
	case Like:
		return OpLike, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
	}
}

func (op Operator) String() string {
	switch op {
	case EqualTo:
		return "EqualTo"
	case LessThan:
		return "LessThan"
	case LessThanOrEqualTo:
		return "LessThanOrEqualTo"
	case GreaterThan:
		return "GreaterThan"
	case GreaterThanOrEqualTo:
		return "GreaterThanOrEqualTo"
	case Like:
		return "Like"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}
