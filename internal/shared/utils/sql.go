package utils

import (
	"fmt"
	"strings"
	"time"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// UpdateSet builds the SET list of a partial UPDATE with numbered placeholders.
type UpdateSet struct {
	sets []string
	args []any
}

// Set adds "column = $n".
func (u *UpdateSet) Set(column string, value any) *UpdateSet {
	u.args = append(u.args, value)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", column, len(u.args)))
	return u
}

// SetIf adds the assignment only when ok is true.
func (u *UpdateSet) SetIf(ok bool, column string, value any) *UpdateSet {
	if ok {
		u.Set(column, value)
	}
	return u
}

// Touch refreshes updated_at so that it is strictly greater than the stored value,
// even when two updates land within the clock's resolution.
func (u *UpdateSet) Touch(now time.Time) *UpdateSet {
	u.args = append(u.args, now)
	u.sets = append(u.sets, fmt.Sprintf("updated_at = GREATEST($%d, updated_at + interval '1 microsecond')", len(u.args)))
	return u
}

// Arg appends a trailing argument (e.g. the WHERE id) and returns its placeholder.
func (u *UpdateSet) Arg(value any) string {
	u.args = append(u.args, value)
	return fmt.Sprintf("$%d", len(u.args))
}

// SQL returns the comma separated assignments and the accumulated args.
func (u *UpdateSet) SQL() (string, []any) {
	return strings.Join(u.sets, ", "), u.args
}
