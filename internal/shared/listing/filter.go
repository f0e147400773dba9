package listing

import (
	"fmt"
	"strings"

	"bookstore-api/internal/shared/utils"
)

type Op int

const (
	// OpILike is a case-insensitive substring match. The value is matched literally.
	OpILike Op = iota
	OpEq
)

// Predicate is one condition of a WHERE clause. Column is trusted SQL, Value is always bound.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Contains matches term as a literal substring, ignoring case.
// The term is folded to lower case so equal searches bind equal arguments.
func Contains(column, term string) Predicate {
	return Predicate{Column: column, Op: OpILike, Value: strings.ToLower(term)}
}

func Equals(column string, value any) Predicate {
	return Predicate{Column: column, Op: OpEq, Value: value}
}

// Filter is an ordered, immutable set of predicates joined with AND.
// Build it once and render it for both the count and the data query.
type Filter struct {
	preds []Predicate
}

func NewFilter(preds ...Predicate) Filter {
	return Filter{}.And(preds...)
}

// And returns a new Filter with preds appended; the receiver is unchanged.
func (f Filter) And(preds ...Predicate) Filter {
	next := make([]Predicate, 0, len(f.preds)+len(preds))
	next = append(next, f.preds...)
	next = append(next, preds...)
	return Filter{preds: next}
}

// AndIf appends p only when ok is true.
func (f Filter) AndIf(ok bool, p Predicate) Filter {
	if !ok {
		return f
	}
	return f.And(p)
}

// SQL renders " WHERE ..." (or "" for an empty filter) with placeholders numbered from start.
func (f Filter) SQL(start int) (string, []any) {
	if len(f.preds) == 0 {
		return "", nil
	}

	conds := make([]string, 0, len(f.preds))
	args := make([]any, 0, len(f.preds))
	n := start
	for _, p := range f.preds {
		switch p.Op {
		case OpILike:
			conds = append(conds, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, p.Column, n))
			args = append(args, "%"+EscapeLike(fmt.Sprint(p.Value))+"%")
		default:
			conds = append(conds, fmt.Sprintf("%s = $%d", p.Column, n))
			args = append(args, p.Value)
		}
		n++
	}

	return " WHERE " + utils.JoinWithAnd(conds), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so the term matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
