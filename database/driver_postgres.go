package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

func NewDriverPostgres(config DriverPostgresConfig) Driver {
	return &driverPostgres{
		config: config,
	}
}

type DriverPostgresConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	Name    string
	SSLMode string
}

type driverPostgres struct {
	config DriverPostgresConfig
}

func driverPostgresFromCredentials(credentials Credentials) (Driver, error) {
	port, err := portFromCredentials(credentials, 5432)
	if err != nil {
		return nil, err
	}

	return NewDriverPostgres(DriverPostgresConfig{
		Host:    credentials[KeyHost],
		Port:    port,
		User:    credentials[KeyUsername],
		Pass:    credentials[KeyPassword],
		Name:    credentials[KeyDatabaseName],
		SSLMode: credentials[KeySSLMode],
	}), nil
}

func (driver *driverPostgres) Name() string {
	return "postgres"
}

func (driver *driverPostgres) Open() (*sql.DB, error) {
	return sql.Open("postgres", driver.dataSourceName())
}

func (driver *driverPostgres) dataSourceName() string {
	sslMode := driver.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteConnectionValue(driver.config.Host),
		driver.config.Port,
		quoteConnectionValue(driver.config.User),
		quoteConnectionValue(driver.config.Pass),
		quoteConnectionValue(driver.config.Name),
		quoteConnectionValue(sslMode),
	)
}

func (driver *driverPostgres) placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// lib/pq does not implement LastInsertId, the session sequence value is
// read instead.
func (driver *driverPostgres) lastInsertIDQuery() string {
	return "SELECT lastval()"
}

func quoteConnectionValue(value string) string {
	if value != "" && !strings.ContainsAny(value, ` '\`) {
		return value
	}

	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)

	return "'" + value + "'"
}
