package factory

import (
	"context"
	"database/sql"
	"fmt"

	// pgx registers itself as the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/openshift-assisted/eventlog-analyzer/internal/common"
	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
)

func CreatePostgresDB(ctx context.Context, conf config.Postgres) (*sql.DB, common.CloseFunc, error) {
	ret, err := sql.Open("pgx", string(conf.DSN))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	err = ret.PingContext(ctx)
	if err != nil {
		ret.Close()

		return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	shutdown := func(context.Context) error {
		return ret.Close()
	}

	return ret, shutdown, nil
}
