package database

import (
	"context"
	"database/sql"
	"log/slog"
)

type ConnectionConfigFunc func(connection *Connection) error

// WithPostConnectFunc runs the callback once the connection has been opened,
// useful for migrations and fixtures.
func WithPostConnectFunc(callback func(db *sql.DB) error) ConnectionConfigFunc {
	return func(connection *Connection) error {
		connection.postConnectFuncs = append(connection.postConnectFuncs, callback)
		return nil
	}
}

func WithPreRunFunc(preRunFunc func(ctx context.Context, statement string, args []any) error) ConnectionConfigFunc {
	return func(connection *Connection) error {
		connection.preRunFuncs = append(connection.preRunFuncs, preRunFunc)
		return nil
	}
}

func WithPostRunFunc(postRunFunc func(ctx context.Context) error) ConnectionConfigFunc {
	return func(connection *Connection) error {
		connection.postRunFuncs = append(connection.postRunFuncs, postRunFunc)
		return nil
	}
}

func WithLogger(logger *slog.Logger) ConnectionConfigFunc {
	return func(connection *Connection) error {
		connection.preRunFuncs = append(connection.preRunFuncs, func(ctx context.Context, statement string, args []any) error {
			logger.InfoContext(ctx, "Database Run",
				"driver", connection.driver.Name(),
				"statement", statement,
				"args", args,
			)

			return nil
		})
		return nil
	}
}
