package dbhelper

import (
	"context"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

// Output is a procedure OUT parameter. Name is the session variable the
// procedure writes (without '@'), Dest a typed pointer the value is read into.
type Output struct {
	Name string
	Dest any
}

// Binding is the ordered argument list of one procedure call.
type Binding struct {
	In  []any
	Out []Output
}

// ProcedureHelper invokes named stored procedures.
type ProcedureHelper interface {
	ExecuteProcedure(ctx context.Context, name string, args ...any) (int64, error)
	ExecuteProcedureWithResult(ctx context.Context, dest any, name string, args ...any) error
	ExecuteProcedureSingle(ctx context.Context, dest any, name string, args ...any) (bool, error)
	ExecuteProcedureScalar(ctx context.Context, dest any, name string, args ...any) error
	ExecuteProcedureWithOutput(ctx context.Context, name string, binding Binding) (int64, error)
}

func NewProcedureHelper(db *sqlx.DB, commandTimeout time.Duration) ProcedureHelper {
	return &SQL{db: db, commandTimeout: commandTimeout}
}

func (s *SQL) ExecuteProcedure(ctx context.Context, name string, args ...any) (int64, error) {
	return s.Execute(ctx, name, args, CommandStoredProcedure)
}

func (s *SQL) ExecuteProcedureWithResult(ctx context.Context, dest any, name string, args ...any) error {
	return s.Query(ctx, dest, name, args, CommandStoredProcedure)
}

func (s *SQL) ExecuteProcedureSingle(ctx context.Context, dest any, name string, args ...any) (bool, error) {
	return s.QueryFirstOrDefault(ctx, dest, name, args, CommandStoredProcedure)
}

func (s *SQL) ExecuteProcedureScalar(ctx context.Context, dest any, name string, args ...any) error {
	return s.ExecuteScalar(ctx, dest, name, args, CommandStoredProcedure)
}

// ExecuteProcedureWithOutput runs the procedure and then reads every output
// variable on the same connection. Output read failures are logged and leave
// the destination at its zero value; only the CALL itself can fail the call.
func (s *SQL) ExecuteProcedureWithOutput(ctx context.Context, name string, binding Binding) (int64, error) {
	logger.Debug("Executing stored procedure with output parameters", zap.String("procedure", name))

	outNames := make([]string, 0, len(binding.Out))
	for _, out := range binding.Out {
		outNames = append(outNames, out.Name)
	}

	var affected int64
	err := s.withConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		stmt, err := callStatement(name, len(binding.In), outNames...)
		if err != nil {
			return err
		}
		res, err := conn.ExecContext(ctx, conn.Rebind(stmt), binding.In...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return err
		}

		s.readOutputs(ctx, conn, name, binding.Out)
		return nil
	})
	if err != nil {
		logger.Error("Error executing stored procedure", zap.String("procedure", name), zap.Error(err))
		return 0, err
	}

	logger.Debug("Stored procedure executed successfully", zap.String("procedure", name), zap.Int64("rows_affected", affected))
	return affected, nil
}

func (s *SQL) readOutputs(ctx context.Context, conn *sqlx.Conn, procedure string, outs []Output) {
	for _, out := range outs {
		if !variableNamePattern.MatchString(out.Name) {
			logger.Error("Error getting output parameter value",
				zap.String("procedure", procedure), zap.String("parameter", out.Name), zap.String("error", "invalid parameter name"))
			resetToZero(out.Dest)
			continue
		}
		if err := conn.QueryRowxContext(ctx, "SELECT @"+out.Name).Scan(out.Dest); err != nil {
			logger.Error("Error getting output parameter value",
				zap.String("procedure", procedure), zap.String("parameter", out.Name), zap.Error(err))
			resetToZero(out.Dest)
		}
	}
}

func resetToZero(dest any) {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}
