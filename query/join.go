package query

import (
	"fmt"
	"slices"

	"github.com/Konsultn-Engineering/sqlfy/utils"
)

// JoinKind selects the join flavour.
type JoinKind int

const (
	JoinLeft JoinKind = iota
	JoinRight
	JoinInner
	JoinFull
)

func (k JoinKind) keyword() (string, error) {
	switch k {
	case JoinLeft:
		return "LEFT", nil
	case JoinRight:
		return "RIGHT", nil
	case JoinInner:
		return "INNER", nil
	case JoinFull:
		return "FULL", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownJoinKind, int(k))
	}
}

func (k JoinKind) String() string {
	if kw, err := k.keyword(); err == nil {
		return kw
	}
	return fmt.Sprintf("JoinKind(%d)", int(k))
}

// On is one equality clause of a join. Left and Right are column names
// written as given against the left and right table aliases.
type On struct {
	Left  string
	Right string
}

// Hash returns the structural hash of the clause.
func (o On) Hash() uint32 {
	acc := utils.OffsetBasis32
	acc = utils.Mix32(acc, utils.U32(o.Left))
	acc = utils.Mix32(acc, utils.U32(o.Right))
	return acc
}

// Join relates two registries' tables with one or more ON clauses.
type Join struct {
	Left    *Identifiers
	Right   *Identifiers
	Kind    JoinKind
	Clauses []On
}

// NewJoin creates a join. Both registries and at least one clause are required.
func NewJoin(left, right *Identifiers, kind JoinKind, clauses ...On) (Join, error) {
	if left == nil || right == nil {
		return Join{}, ErrNilRegistry
	}
	if len(clauses) == 0 {
		return Join{}, fmt.Errorf("%w: %s to %s", ErrNoJoinClauses, left.Name(), right.Name())
	}
	return Join{
		Left:    left,
		Right:   right,
		Kind:    kind,
		Clauses: slices.Clone(clauses),
	}, nil
}

// MustJoin is NewJoin that panics on error.
func MustJoin(left, right *Identifiers, kind JoinKind, clauses ...On) Join {
	j, err := NewJoin(left, right, kind, clauses...)
	if err != nil {
		panic(err)
	}
	return j
}

// Hash returns the structural hash: clauses, right, left, kind. A registry
// contributes its table hash, a missing one contributes zero.
func (j Join) Hash() uint32 {
	acc := utils.OffsetBasis32
	acc = utils.Mix32(acc, utils.ListHash(j.Clauses))
	acc = utils.Mix32(acc, j.Right.identityHash())
	acc = utils.Mix32(acc, j.Left.identityHash())
	acc = utils.Mix32(acc, uint32(j.Kind))
	return acc
}

// Equal reports structural equality.
func (j Join) Equal(o Join) bool {
	return j.Left == o.Left &&
		j.Right == o.Right &&
		j.Kind == o.Kind &&
		slices.Equal(j.Clauses, o.Clauses)
}

func (j Join) validate() error {
	if j.Left == nil || j.Right == nil {
		return ErrNilRegistry
	}
	if len(j.Clauses) == 0 {
		return fmt.Errorf("%w: %s to %s", ErrNoJoinClauses, j.Left.Name(), j.Right.Name())
	}
	return nil
}
