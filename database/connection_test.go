package database_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lunagic/quill/database"
	"gotest.tools/v3/assert"
)

func mysqlCredentials() database.Credentials {
	return database.Credentials{
		"driver":        "mysql",
		"database_name": "test",
		"host":          "localhost",
		"username":      "root",
		"password":      "",
	}
}

func TestNewConnectionMissingKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"driver", "database_name", "host", "username", "password"} {
		credentials := mysqlCredentials()
		delete(credentials, key)

		_, err := database.NewConnection(credentials)
		assert.ErrorIs(t, err, database.ErrBadCredentials, key)
	}

	_, err := database.NewConnection(database.Credentials{})
	assert.ErrorIs(t, err, database.ErrBadCredentials)

	_, err = database.NewConnection(nil)
	assert.ErrorIs(t, err, database.ErrBadCredentials)
}

func TestNewConnectionKeysAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	credentials := database.Credentials{}
	for key, value := range mysqlCredentials() {
		credentials[strings.ToUpper(key)] = value
	}
	credentials["Extra"] = "ignored"

	connection, err := database.NewConnection(credentials)
	assert.NilError(t, err)
	assert.Equal(t, connection.Driver().Name(), "mysql")
}

func TestNewConnectionUnknownDriver(t *testing.T) {
	t.Parallel()

	credentials := mysqlCredentials()
	credentials["driver"] = "oracle"

	_, err := database.NewConnection(credentials)
	assert.ErrorIs(t, err, database.ErrBadCredentials)
	assert.ErrorIs(t, err, database.ErrUnknownDriver)
}

func TestNewConnectionInvalidPort(t *testing.T) {
	t.Parallel()

	credentials := mysqlCredentials()
	credentials["port"] = "not-a-port"

	_, err := database.NewConnection(credentials)
	assert.ErrorIs(t, err, database.ErrBadCredentials)
}

func TestNewConnectionSQLiteKeys(t *testing.T) {
	t.Parallel()

	keys, err := database.RequiredKeys("sqlite3")
	assert.NilError(t, err)
	assert.DeepEqual(t, keys, []string{"driver", "database_name"})

	_, err = database.NewConnection(database.Credentials{"driver": "sqlite3"})
	assert.ErrorIs(t, err, database.ErrBadCredentials)

	_, err = database.NewConnection(database.Credentials{"driver": "sqlite3", "database_name": ":memory:"})
	assert.NilError(t, err)
}

func TestDrivers(t *testing.T) {
	t.Parallel()

	assert.DeepEqual(t, database.Drivers(), []string{"mysql", "postgres", "sqlite3"})

	_, err := database.RequiredKeys("oracle")
	assert.ErrorIs(t, err, database.ErrUnknownDriver)
}

func TestConnectionLifecycle(t *testing.T) {
	t.Parallel()

	connection, err := database.NewConnection(database.Credentials{
		"driver":        "sqlite3",
		"database_name": fmt.Sprintf("%s/database.sqlite", t.TempDir()),
	})
	assert.NilError(t, err)

	{ // Handle is unavailable until connected
		_, err := connection.Handle()
		assert.ErrorIs(t, err, database.ErrNotConnected)
	}

	connected, err := connection.Connect(t.Context())
	assert.NilError(t, err)
	assert.Equal(t, connected, connection)

	first, err := connection.Handle()
	assert.NilError(t, err)

	{ // Connecting again keeps the existing handle
		_, err := connection.Connect(t.Context())
		assert.NilError(t, err)

		second, err := connection.Handle()
		assert.NilError(t, err)
		assert.Equal(t, first, second)
	}

	assert.NilError(t, connection.Close())

	_, err = connection.Handle()
	assert.ErrorIs(t, err, database.ErrNotConnected)

	assert.NilError(t, connection.Close())
}
