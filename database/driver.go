package database

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrUnknownDriver  = errors.New("unknown driver")
	ErrNotConnected   = errors.New("not connected")
	ErrBlankQuery     = errors.New("blank query")
	ErrNoLastInsertID = errors.New("no last insert id")
)

const (
	KeyDriver       = "driver"
	KeyDatabaseName = "database_name"
	KeyHost         = "host"
	KeyPort         = "port"
	KeyUsername     = "username"
	KeyPassword     = "password"
	KeySSLMode      = "sslmode"
)

// Driver knows how to open a database engine and which placeholder syntax
// that engine expects.
type Driver interface {
	Name() string
	Open() (*sql.DB, error)
	placeholder(position int) string
	lastInsertIDQuery() string
}

type driverKind struct {
	requiredKeys []string
	build        func(credentials Credentials) (Driver, error)
}

var networkKeys = []string{
	KeyDriver,
	KeyDatabaseName,
	KeyHost,
	KeyUsername,
	KeyPassword,
}

var driverKinds = map[string]driverKind{
	"mysql": {
		requiredKeys: networkKeys,
		build:        driverMySQLFromCredentials,
	},
	"postgres": {
		requiredKeys: networkKeys,
		build:        driverPostgresFromCredentials,
	},
	"sqlite3": {
		requiredKeys: []string{KeyDriver, KeyDatabaseName},
		build:        driverSQLiteFromCredentials,
	},
}

// Drivers lists the driver names accepted by the driver credential.
func Drivers() []string {
	names := []string{}
	for name := range driverKinds {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// RequiredKeys returns the credential keys the named driver needs.
func RequiredKeys(driverName string) ([]string, error) {
	kind, found := driverKinds[strings.ToLower(driverName)]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driverName)
	}

	return slices.Clone(kind.requiredKeys), nil
}

func driverFromCredentials(credentials Credentials) (Driver, error) {
	driverName, found := credentials[KeyDriver]
	if !found {
		return nil, fmt.Errorf("%w: missing %s", ErrBadCredentials, KeyDriver)
	}

	kind, found := driverKinds[strings.ToLower(driverName)]
	if !found {
		return nil, fmt.Errorf("%w: %w: %q", ErrBadCredentials, ErrUnknownDriver, driverName)
	}

	missing := []string{}
	for _, key := range kind.requiredKeys {
		if _, found := credentials[key]; !found {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrBadCredentials, strings.Join(missing, ", "))
	}

	return kind.build(credentials)
}

func portFromCredentials(credentials Credentials, fallback int) (int, error) {
	raw, found := credentials[KeyPort]
	if !found || raw == "" {
		return fallback, nil
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadCredentials, KeyPort, raw)
	}

	return port, nil
}
