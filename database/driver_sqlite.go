package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func NewDriverSQLite(path string) Driver {
	return &driverSQLite{
		Path: path,
	}
}

type driverSQLite struct {
	Path string
}

func driverSQLiteFromCredentials(credentials Credentials) (Driver, error) {
	return NewDriverSQLite(credentials[KeyDatabaseName]), nil
}

func (driver *driverSQLite) Name() string {
	return "sqlite3"
}

func (driver *driverSQLite) Open() (*sql.DB, error) {
	return sql.Open(
		"sqlite3",
		fmt.Sprintf("file:%s?cache=shared&_foreign_keys=on", driver.Path),
	)
}

func (driver *driverSQLite) placeholder(position int) string {
	return "?"
}

func (driver *driverSQLite) lastInsertIDQuery() string {
	return ""
}
