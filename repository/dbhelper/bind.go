package dbhelper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	procedureNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
	variableNamePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// bind resolves statement text and driver args for a command. The returned
// statement uses '?' bindvars; callers Rebind it for their driver.
func bind(query string, params any, kind CommandKind) (string, []any, error) {
	if kind == CommandStoredProcedure {
		args, err := positional(params)
		if err != nil {
			return "", nil, err
		}
		stmt, err := callStatement(query, len(args))
		if err != nil {
			return "", nil, err
		}
		return stmt, args, nil
	}

	switch p := params.(type) {
	case nil:
		return query, nil, nil
	case []any:
		return query, p, nil
	default:
		return sqlx.Named(query, p)
	}
}

func positional(params any) ([]any, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case []any:
		return p, nil
	default:
		return nil, fmt.Errorf("dbhelper: stored procedure params must be []any, got %T", params)
	}
}

// callStatement builds CALL name(?, ?, @out1, ...).
func callStatement(name string, inputs int, outputs ...string) (string, error) {
	if !procedureNamePattern.MatchString(name) {
		return "", fmt.Errorf("dbhelper: invalid procedure name %q", name)
	}

	placeholders := make([]string, 0, inputs+len(outputs))
	for i := 0; i < inputs; i++ {
		placeholders = append(placeholders, "?")
	}
	for _, out := range outputs {
		if !variableNamePattern.MatchString(out) {
			return "", fmt.Errorf("dbhelper: invalid output parameter name %q", out)
		}
		placeholders = append(placeholders, "@"+out)
	}

	return fmt.Sprintf("CALL %s(%s)", name, strings.Join(placeholders, ", ")), nil
}
