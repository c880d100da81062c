package dbhelper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

// CommandKind tells the helper how to interpret the statement it is given.
type CommandKind int

const (
	// CommandText is ad hoc SQL.
	CommandText CommandKind = iota
	// CommandStoredProcedure is a procedure name invoked with ordered args.
	CommandStoredProcedure
)

func (k CommandKind) String() string {
	if k == CommandStoredProcedure {
		return "stored_procedure"
	}
	return "text"
}

var (
	ErrNoRows       = sql.ErrNoRows
	ErrMultipleRows = errors.New("sql: more than one row in result set")
)

// TxFunc is a unit of work run inside ExecuteInTransaction.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

// Helper executes SQL text or stored procedures on a dedicated connection per
// call. params may be nil, an ordered []any, or a struct/map bound by :name.
type Helper interface {
	Query(ctx context.Context, dest any, query string, params any, kind CommandKind) error
	QueryFirstOrDefault(ctx context.Context, dest any, query string, params any, kind CommandKind) (bool, error)
	QuerySingle(ctx context.Context, dest any, query string, params any, kind CommandKind) error
	Execute(ctx context.Context, query string, params any, kind CommandKind) (int64, error)
	ExecuteScalar(ctx context.Context, dest any, query string, params any, kind CommandKind) error
	ExecuteInTransaction(ctx context.Context, fn TxFunc) error
}

type SQL struct {
	db             *sqlx.DB
	commandTimeout time.Duration
}

func NewHelper(db *sqlx.DB, commandTimeout time.Duration) Helper {
	return &SQL{db: db, commandTimeout: commandTimeout}
}

// withConn checks a connection out of the driver pool for the duration of fn
// and always returns it, whatever fn does.
func (s *SQL) withConn(ctx context.Context, fn func(ctx context.Context, conn *sqlx.Conn) error) error {
	if s.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.commandTimeout)
		defer cancel()
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, conn)
}

func (s *SQL) Query(ctx context.Context, dest any, query string, params any, kind CommandKind) error {
	logger.Debug("Executing query", zap.String("sql", query), zap.Stringer("kind", kind))

	err := s.withConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		q, args, err := bind(query, params, kind)
		if err != nil {
			return err
		}
		return conn.SelectContext(ctx, dest, conn.Rebind(q), args...)
	})
	if err != nil {
		logger.Error("Error executing query", zap.String("sql", query), zap.Error(err))
		return err
	}

	logger.Debug("Query executed successfully", zap.String("sql", query), zap.Int("rows", sliceLen(dest)))
	return nil
}

func (s *SQL) QueryFirstOrDefault(ctx context.Context, dest any, query string, params any, kind CommandKind) (bool, error) {
	logger.Debug("Executing query (first or default)", zap.String("sql", query), zap.Stringer("kind", kind))

	found := false
	err := s.withConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		q, args, err := bind(query, params, kind)
		if err != nil {
			return err
		}
		if err := conn.GetContext(ctx, dest, conn.Rebind(q), args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		logger.Error("Error executing query (first or default)", zap.String("sql", query), zap.Error(err))
		return false, err
	}

	logger.Debug("Query executed successfully", zap.String("sql", query), zap.Bool("found", found))
	return found, nil
}

func (s *SQL) QuerySingle(ctx context.Context, dest any, query string, params any, kind CommandKind) error {
	logger.Debug("Executing query (single)", zap.String("sql", query), zap.Stringer("kind", kind))

	err := s.withConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		q, args, err := bind(query, params, kind)
		if err != nil {
			return err
		}

		target := reflect.ValueOf(dest)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("dbhelper: QuerySingle needs a non-nil pointer, got %T", dest)
		}
		rows := reflect.New(reflect.SliceOf(target.Elem().Type()))
		if err := conn.SelectContext(ctx, rows.Interface(), conn.Rebind(q), args...); err != nil {
			return err
		}

		switch n := rows.Elem().Len(); {
		case n == 0:
			return ErrNoRows
		case n > 1:
			return ErrMultipleRows
		}
		target.Elem().Set(rows.Elem().Index(0))
		return nil
	})
	if err != nil {
		logger.Error("Error executing query (single)", zap.String("sql", query), zap.Error(err))
		return err
	}

	logger.Debug("Query executed successfully", zap.String("sql", query))
	return nil
}

func (s *SQL) Execute(ctx context.Context, query string, params any, kind CommandKind) (int64, error) {
	logger.Debug("Executing command", zap.String("sql", query), zap.Stringer("kind", kind))

	var affected int64
	err := s.withConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		q, args, err := bind(query, params, kind)
		if err != nil {
			return err
		}
		res, err := conn.ExecContext(ctx, conn.Rebind(q), args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		logger.Error("Error executing command", zap.String("sql", query), zap.Error(err))
		return 0, err
	}

	logger.Debug("Command executed successfully", zap.String("sql", query), zap.Int64("rows_affected", affected))
	return affected, nil
}

// ExecuteScalar reads the first column of the first row into dest. An empty
// result leaves dest untouched.
func (s *SQL) ExecuteScalar(ctx context.Context, dest any, query string, params any, kind CommandKind) error {
	logger.Debug("Executing scalar", zap.String("sql", query), zap.Stringer("kind", kind))

	err := s.withConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		q, args, err := bind(query, params, kind)
		if err != nil {
			return err
		}
		if err := conn.QueryRowxContext(ctx, conn.Rebind(q), args...).Scan(dest); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("Error executing scalar", zap.String("sql", query), zap.Error(err))
		return err
	}

	logger.Debug("Scalar executed successfully", zap.String("sql", query))
	return nil
}

// ExecuteInTransaction commits when fn returns nil and rolls back otherwise.
// A panic inside fn is rolled back and re-raised.
func (s *SQL) ExecuteInTransaction(ctx context.Context, fn TxFunc) error {
	logger.Debug("Beginning transaction")

	err := s.withConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}

		committed := false
		defer func() {
			if committed {
				return
			}
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("Error rolling back transaction", zap.Error(rbErr))
			} else {
				logger.Warn("Transaction rolled back")
			}
		}()

		if err := fn(ctx, tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		committed = true
		return nil
	})
	if err != nil {
		logger.Error("Error executing transaction", zap.Error(err))
		return err
	}

	logger.Debug("Transaction committed")
	return nil
}

func sliceLen(dest any) int {
	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice {
		return v.Len()
	}
	return 0
}
