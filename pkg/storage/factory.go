package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// BackendConfig 按配置选择后端 避免storage直接依赖config包
type BackendConfig struct {
	Backend  string
	MysqlDsn string
	MongoUri string
	MongoDb  string
}

// Open 根据配置构建Store 并完成建表或建索引
func Open(ctx context.Context, cfg BackendConfig) (Store, error) {
	switch cfg.Backend {
	case "mysql":
		store, err := NewMySQLStore(cfg.MysqlDsn)
		if err != nil {
			return nil, errors.WithMessage(err, "open mysql store")
		}
		if err := store.Migrate(ctx); err != nil {
			return nil, errors.WithMessage(err, "migrate mysql store")
		}
		logrus.Info("storage backend: mysql")
		return store, nil
	case "mongo":
		store, err := NewMongoStore(ctx, cfg.MongoUri, cfg.MongoDb)
		if err != nil {
			return nil, errors.WithMessage(err, "open mongo store")
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, errors.WithMessage(err, "ensure mongo indexes")
		}
		logrus.Info("storage backend: mongo")
		return store, nil
	case "memory", "":
		logrus.Info("storage backend: memory")
		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
