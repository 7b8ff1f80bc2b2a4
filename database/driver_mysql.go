package database

import (
	"database/sql"
	"io"
	"log"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

func NewDriverMySQL(config DriverMySQLConfig) Driver {
	return &driverMySQL{
		config: config,
	}
}

type DriverMySQLConfig struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type driverMySQL struct {
	config DriverMySQLConfig
}

func driverMySQLFromCredentials(credentials Credentials) (Driver, error) {
	port, err := portFromCredentials(credentials, 3306)
	if err != nil {
		return nil, err
	}

	return NewDriverMySQL(DriverMySQLConfig{
		Host: credentials[KeyHost],
		Port: port,
		User: credentials[KeyUsername],
		Pass: credentials[KeyPassword],
		Name: credentials[KeyDatabaseName],
	}), nil
}

func (driver *driverMySQL) Name() string {
	return "mysql"
}

func (driver *driverMySQL) Open() (*sql.DB, error) {
	_ = mysql.SetLogger(log.New(io.Discard, "", log.LstdFlags))

	return sql.Open("mysql", driver.dataSourceName())
}

func (driver *driverMySQL) dataSourceName() string {
	config := mysql.NewConfig()
	config.User = driver.config.User
	config.Passwd = driver.config.Pass
	config.Net = "tcp"
	config.Addr = net.JoinHostPort(driver.config.Host, strconv.Itoa(driver.config.Port))
	config.DBName = driver.config.Name
	config.ParseTime = true

	return config.FormatDSN()
}

func (driver *driverMySQL) placeholder(position int) string {
	return "?"
}

// Uses the LAST_INSERT_ID reported on the result.
func (driver *driverMySQL) lastInsertIDQuery() string {
	return ""
}
