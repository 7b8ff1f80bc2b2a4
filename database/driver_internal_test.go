package database

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestDriverMySQLDataSourceName(t *testing.T) {
	driver, err := driverFromCredentials(Credentials{
		KeyDriver:       "mysql",
		KeyDatabaseName: "test",
		KeyHost:         "db.internal",
		KeyPort:         "3307",
		KeyUsername:     "root",
		KeyPassword:     "p@ss",
	})
	assert.NilError(t, err)

	mysqlDriver := driver.(*driverMySQL)
	assert.Equal(t, mysqlDriver.dataSourceName(), "root:p@ss@tcp(db.internal:3307)/test?parseTime=true")
	assert.Equal(t, driver.placeholder(3), "?")
	assert.Equal(t, driver.lastInsertIDQuery(), "")
}

func TestDriverPostgresDataSourceName(t *testing.T) {
	driver, err := driverFromCredentials(Credentials{
		KeyDriver:       "postgres",
		KeyDatabaseName: "test",
		KeyHost:         "localhost",
		KeyUsername:     "postgres",
		KeyPassword:     "it's secret",
	})
	assert.NilError(t, err)

	postgresDriver := driver.(*driverPostgres)
	assert.Equal(
		t,
		postgresDriver.dataSourceName(),
		`host=localhost port=5432 user=postgres password='it\'s secret' dbname=test sslmode=disable`,
	)
	assert.Equal(t, driver.placeholder(3), "$3")
	assert.Equal(t, driver.lastInsertIDQuery(), "SELECT lastval()")
}

func TestQuoteConnectionValue(t *testing.T) {
	assert.Equal(t, quoteConnectionValue("plain"), "plain")
	assert.Equal(t, quoteConnectionValue(""), "''")
	assert.Equal(t, quoteConnectionValue(`a\b`), `'a\\b'`)
}

func TestReturnsRows(t *testing.T) {
	assert.Assert(t, returnsRows("SELECT * FROM foo"))
	assert.Assert(t, returnsRows("select id FROM foo"))
	assert.Assert(t, !returnsRows("INSERT INTO foo (name) VALUES (?)"))
	assert.Assert(t, !returnsRows("SEL"))
	assert.Assert(t, isInsert("insert INTO foo (name) VALUES (?)"))
}
