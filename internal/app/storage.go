package app

import (
	"context"
	"fmt"
	"io"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/persistence/memory"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/persistence/mysql"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/persistence/sqlite"
)

func (app *Application) initializeStorage() error {
	var closer io.Closer

	switch app.config.Storage.Type {
	case "mysql":
		db, err := mysql.NewDB(&app.config.Storage.MySQL)
		if err != nil {
			return fmt.Errorf("mysql init: %w", err)
		}

		if err := mysql.NewMigrator(db.DB).Up(context.Background()); err != nil {
			db.Close()
			return fmt.Errorf("mysql migration: %w", err)
		}

		repos := mysql.NewRepositories(db)
		app.notificationLog = repos.NotificationLog
		app.settingRepo = repos.Setting
		app.dbPinger = db
		closer = db

		app.logger.Get().Info("MySQL storage initialized",
			"host", app.config.Storage.MySQL.Host,
			"database", app.config.Storage.MySQL.Database,
			"pool_max_open", app.config.Storage.MySQL.Pool.MaxOpenConns,
		)

	case "sqlite":
		db, err := sqlite.NewDB(app.config.Storage.SQLite.Path)
		if err != nil {
			return fmt.Errorf("sqlite init: %w", err)
		}

		if err := db.Migrate(context.Background()); err != nil {
			db.Close()
			return fmt.Errorf("sqlite migration: %w", err)
		}

		repos := sqlite.NewRepositories(db)
		app.notificationLog = repos.NotificationLog
		app.settingRepo = repos.Setting
		app.dbPinger = db
		closer = db

		app.logger.Get().Info("SQLite storage initialized",
			"path", app.config.Storage.SQLite.Path,
		)

	case "memory", "":
		app.notificationLog = memory.NewNotificationLogRepository()
		app.settingRepo = memory.NewSettingRepository()

		app.logger.Get().Info("in-memory storage initialized")

	default:
		return fmt.Errorf("unknown storage type: %s", app.config.Storage.Type)
	}

	app.dbCloser = closer
	return nil
}

// databaseChecker adapts a dbPinger to the readiness checker surface.
type databaseChecker struct {
	pinger dbPinger
}

func (c *databaseChecker) Name() string { return "database" }

func (c *databaseChecker) Check(ctx context.Context) error {
	return c.pinger.Ping(ctx)
}
