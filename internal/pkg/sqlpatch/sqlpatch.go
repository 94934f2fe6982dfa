// Package sqlpatch builds the SET fragment for partial updates. Callers are
// responsible for allowlisting field names before they reach this package;
// anything passed in ends up as a column identifier in the statement.
package sqlpatch

import (
	"sort"
	"strings"

	"pm-backend/internal/pkg/apperr"
)

// SetClause turns a sparse field→value map into a parameterized
// "col1 = ?, col2 = ?" fragment plus the bound values in matching order.
// colMap translates logical field names to physical column names; fields not
// in colMap keep their own name. Fields are emitted in sorted order so the
// produced SQL is deterministic. Returns EmptyUpdate when fields is empty.
func SetClause(fields map[string]interface{}, colMap map[string]string) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, apperr.EmptyUpdate()
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]string, 0, len(names))
	vals := make([]interface{}, 0, len(names))
	for _, name := range names {
		col := name
		if mapped, ok := colMap[name]; ok {
			col = mapped
		}
		cols = append(cols, col+" = ?")
		vals = append(vals, fields[name])
	}

	return strings.Join(cols, ", "), vals, nil
}
