package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func pqCode(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	e, ok := pqCode(err)
	return ok && e.Code == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	e, ok := pqCode(err)
	return ok && e.Code == pqForeignKeyViolation
}

// constraintOf returns the violated constraint name, if any.
func constraintOf(err error) string {
	if e, ok := pqCode(err); ok {
		return e.Constraint
	}
	return ""
}

// likePattern turns a search term into an ILIKE substring pattern.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// where accumulates AND-ed conditions with positional arguments.
// Each condition is a format string whose %[1]d verbs receive the argument's placeholder index.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

type rowScanner interface {
	Scan(dest ...any) error
}
