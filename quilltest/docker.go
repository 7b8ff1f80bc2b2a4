package quilltest

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"testing"

	"github.com/ory/dockertest"
)

type DockerServiceConfig[T any] struct {
	DockerImage    string
	DockerImageTag string
	InternalPort   int
	Environment    map[string]string
	Builder        func(host string, port int) (T, error)
}

func (d DockerServiceConfig[T]) Env() []string {
	env := []string{}
	for k, v := range d.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	return env
}

// GetDockerService starts the container and retries Builder until the
// service answers. The test is skipped in short mode or without Docker.
func GetDockerService[T any](
	t *testing.T,
	config DockerServiceConfig[T],
) T {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping long-running test in short mode.")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Could not construct pool: %s", err)
	}

	if err := pool.Client.Ping(); err != nil {
		t.Skipf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.Run(
		config.DockerImage,
		config.DockerImageTag,
		config.Env(),
	)
	if err != nil {
		t.Fatalf("Could not start resource: %s", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("Could not purge resource: %s", err)
		}
	})

	host, portString, err := net.SplitHostPort(resource.GetHostPort(fmt.Sprintf("%d/tcp", config.InternalPort)))
	if err != nil {
		t.Fatalf("Error reading mapped port: %s", err)
	}

	// A remote daemon publishes ports on its own address
	if dockerURL := os.Getenv("DOCKER_HOST"); dockerURL != "" {
		u, err := url.Parse(dockerURL)
		if err != nil {
			t.Fatalf("Error parsing docker URL: %s", err)
		}

		if u.Hostname() != "" {
			host = u.Hostname()
		}
	}

	port, err := strconv.Atoi(portString)
	if err != nil {
		t.Fatalf("Error parsing mapped port: %s", err)
	}

	var service T

	if err := pool.Retry(func() error {
		var err error

		service, err = config.Builder(host, port)
		return err
	}); err != nil {
		t.Fatalf("Could not connect to service: %s", err)
	}

	return service
}
