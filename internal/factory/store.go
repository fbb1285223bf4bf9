package factory

import (
	"context"
	"fmt"

	"github.com/openshift-assisted/eventlog-analyzer/internal/common"
	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo/result"
)

func CreateResultStore(ctx context.Context, conf config.Store) (repo.ResultStore, common.CloseFunc, error) {
	switch conf.Kind {
	case config.StoreKindPostgres:
		db, closeFunc, err := CreatePostgresDB(ctx, conf.Postgres)
		if err != nil {
			return nil, nil, err
		}

		ret, err := result.NewPostgresStore(db, conf.Postgres.Table)
		if err != nil {
			_ = closeFunc(ctx)

			return nil, nil, fmt.Errorf("failed to create postgres store: %w", err)
		}

		return ret, closeFunc, nil
	case config.StoreKindValkey:
		client, closeFunc, err := CreateValkeyClient(ctx, conf.Valkey)
		if err != nil {
			return nil, nil, err
		}

		return result.NewValkeyStore(client, conf.Valkey.KeyPrefix), closeFunc, nil
	case config.StoreKindMemory:
		return result.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unexpected store kind %q", conf.Kind)
	}
}
