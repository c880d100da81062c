package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/muhammadheryan/sample-api/utils/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var Migrations embed.FS

// gooseLogger routes goose output through the global zap logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Info("goose", zap.String("message", fmt.Sprintf(format, v...)))
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Fatal("goose", zap.String("message", fmt.Sprintf(format, v...)))
}

func setup() error {
	goose.SetBaseFS(Migrations)
	goose.SetLogger(gooseLogger{})
	return goose.SetDialect("mysql")
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Collect lists the embedded migrations in version order.
func Collect() (goose.Migrations, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	return goose.CollectMigrations(".", 0, goose.MaxVersion)
}
