package database

import (
	"context"
	"database/sql"
	"strings"
)

// Credentials maps credential keys to values. Keys are compared without
// regard to case.
type Credentials map[string]string

func (credentials Credentials) normalize() Credentials {
	normalized := Credentials{}
	for key, value := range credentials {
		normalized[strings.ToLower(key)] = value
	}

	return normalized
}

type Connection struct {
	credentials      Credentials
	driver           Driver
	handle           *sqlHandle
	preRunFuncs      []func(ctx context.Context, statement string, args []any) error
	postRunFuncs     []func(ctx context.Context) error
	postConnectFuncs []func(db *sql.DB) error
}

// NewConnection validates the credentials against the required keys of the
// driver they name. Nothing is opened until Connect.
func NewConnection(
	credentials Credentials,
	configFuncs ...ConnectionConfigFunc,
) (*Connection, error) {
	credentials = credentials.normalize()

	driver, err := driverFromCredentials(credentials)
	if err != nil {
		return nil, err
	}

	connection := &Connection{
		credentials:      credentials,
		driver:           driver,
		preRunFuncs:      []func(ctx context.Context, statement string, args []any) error{},
		postRunFuncs:     []func(ctx context.Context) error{},
		postConnectFuncs: []func(db *sql.DB) error{},
	}

	for _, configFunc := range configFuncs {
		if err := configFunc(connection); err != nil {
			return nil, err
		}
	}

	return connection, nil
}

func (connection *Connection) Driver() Driver {
	return connection.driver
}

// Connect opens a single session to the database. Calling it on a connected
// value does nothing.
func (connection *Connection) Connect(ctx context.Context) (*Connection, error) {
	if connection.handle != nil {
		return connection, nil
	}

	db, err := connection.driver.Open()
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	for _, postConnectFunc := range connection.postConnectFuncs {
		if err := postConnectFunc(db); err != nil {
			_ = conn.Close()
			_ = db.Close()
			return nil, err
		}
	}

	connection.handle = &sqlHandle{
		driver:       connection.driver,
		db:           db,
		conn:         conn,
		preRunFuncs:  connection.preRunFuncs,
		postRunFuncs: connection.postRunFuncs,
	}

	return connection, nil
}

func (connection *Connection) Handle() (Handle, error) {
	if connection.handle == nil {
		return nil, ErrNotConnected
	}

	return connection.handle, nil
}

// Close releases the session, Connect may be called again afterwards.
func (connection *Connection) Close() error {
	if connection.handle == nil {
		return nil
	}

	err := connection.handle.Close()
	connection.handle = nil

	return err
}
