package querybuilder_test

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/lunagic/quill/database"
	"github.com/lunagic/quill/quilltest"
)

func Test_DriverPostgres_17(t *testing.T) {
	t.Parallel()
	testSuite(t, setupPostgres(t, "17"), createTablePostgres)
}

func Test_DriverPostgres_13(t *testing.T) {
	t.Parallel()
	testSuite(t, setupPostgres(t, "13"), createTablePostgres)
}

const createTablePostgres = "CREATE TABLE foo (id BIGSERIAL PRIMARY KEY, name TEXT NOT NULL)"

func setupPostgres(
	t *testing.T,
	tag string,
) database.Credentials {
	name := uuid.NewString()
	pass := uuid.NewString()
	user := uuid.NewString()

	return quilltest.GetDockerService(
		t,
		quilltest.DockerServiceConfig[database.Credentials]{
			DockerImage:    "postgres",
			DockerImageTag: tag,
			InternalPort:   5432,
			Environment: map[string]string{
				"POSTGRES_PASSWORD": pass,
				"POSTGRES_DB":       name,
				"POSTGRES_USER":     user,
			},
			Builder: func(host string, port int) (database.Credentials, error) {
				credentials := database.Credentials{
					"driver":        "postgres",
					"database_name": name,
					"host":          host,
					"port":          strconv.Itoa(port),
					"username":      user,
					"password":      pass,
				}

				return credentials, ping(credentials)
			},
		},
	)
}
