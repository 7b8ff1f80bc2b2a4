package querybuilder_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/lunagic/quill/database"
	"github.com/lunagic/quill/quilltest"
)

func Test_DriverMySQL_8(t *testing.T) {
	t.Parallel()
	testSuite(t, setupMySQL(t, "mysql", "8"), createTableMySQL)
}

func Test_DriverMySQL_MariaDB_11_4(t *testing.T) {
	t.Parallel()
	testSuite(t, setupMySQL(t, "mariadb", "11.4"), createTableMySQL)
}

const createTableMySQL = "CREATE TABLE foo (id BIGINT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(255) NOT NULL)"

func setupMySQL(
	t *testing.T,
	image string,
	tag string,
) database.Credentials {
	name := uuid.NewString()
	pass := uuid.NewString()
	user := uuid.NewString()[0:32] // MySQL can't have usernames longer than 32 characters

	return quilltest.GetDockerService(
		t,
		quilltest.DockerServiceConfig[database.Credentials]{
			DockerImage:    image,
			DockerImageTag: tag,
			InternalPort:   3306,
			Environment: map[string]string{
				"MYSQL_ROOT_PASSWORD": uuid.NewString(),
				"MYSQL_PASSWORD":      pass,
				"MYSQL_DATABASE":      name,
				"MYSQL_USER":          user,
			},
			Builder: func(host string, port int) (database.Credentials, error) {
				credentials := database.Credentials{
					"driver":        "mysql",
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

func ping(credentials database.Credentials) error {
	connection, err := database.NewConnection(credentials)
	if err != nil {
		return err
	}

	if _, err := connection.Connect(context.Background()); err != nil {
		return err
	}

	return connection.Close()
}
