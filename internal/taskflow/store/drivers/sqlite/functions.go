package sqlite

import (
	"database/sql/driver"
	"strings"

	sqlite3 "modernc.org/sqlite"
)

// SQLite's built-in lower() only folds ASCII. Search queries compare stored
// text through go_lower so it folds the same way as the query.
func init() {
	sqlite3.MustRegisterDeterministicScalarFunction("go_lower", 1, goLower)
}

func goLower(_ *sqlite3.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
