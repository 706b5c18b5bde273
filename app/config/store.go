package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mahesh-hegde/instante/app/dataset"
	"github.com/mahesh-hegde/instante/app/datastore"
)

// decoded SQLite datasets stay in memory this long after their last use
const sqliteCacheTTL = 10 * time.Minute

// InitStore opens the dataset store selected by conf. The returned function
// releases whatever the store holds open.
func InitStore(conf *InstanteConfig) (dataset.Store, func() error, error) {
	switch conf.Store {
	case StoreSQLite:
		db, err := datastore.NewSQLiteDB(conf.DataDir, false)
		if err != nil {
			return nil, nil, fmt.Errorf("error while opening SQLite DB: %w", err)
		}
		sqlStore, err := dataset.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		store := dataset.NewCachedStore(sqlStore, sqliteCacheTTL)
		if err := store.Init(); err != nil {
			sqlStore.Close()
			db.Close()
			return nil, nil, err
		}
		slog.Info("initialized dataset store", "kind", conf.Store, "data_dir", conf.DataDir)
		return store, func() error {
			sqlStore.Close()
			return db.Close()
		}, nil

	default:
		store := dataset.NewMemoryStore(conf.DatasetTTL())
		slog.Info("initialized dataset store", "kind", StoreMemory, "ttl", conf.DatasetTTL())
		return store, func() error { return nil }, store.Init()
	}
}
