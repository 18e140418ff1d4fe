package taskflow_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the TaskFlow end-to-end suite. The
 * image is built once from cmd/taskflow/Dockerfile; each test starts its own
 * container so state never leaks between tests.
 */

const (
	testImageName = "taskflow-e2e-test:latest"

	testPassword = "secret123"
)

// TestMain builds the Docker image once before all tests and removes it after.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building TaskFlow Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up TaskFlow Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/taskflow/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

type service struct {
	baseURL   string
	container testcontainers.Container
}

func baseEnv() map[string]string {
	return map[string]string{
		"TASKFLOW_ISSUER":       "taskflow-e2e",
		"TASKFLOW_ALGORITHM":    "EdDSA",
		"TASKFLOW_RESET_SECRET": "e2e-reset-secret-0123456789abcdef",
		"MAIL_DRIVER":           "log",
		"ENV":                   "test",
		"LOG_LEVEL":             "info",
		"LOG_FORMAT":            "json",
		"STREAM_HEARTBEAT":      "1s",
	}
}

// setupService starts TaskFlow with relaxed rate limits. Tests make many
// rapid requests which would otherwise hit the production limits.
func setupService(t *testing.T) *service {
	env := baseEnv()
	for _, profile := range []string{"AUTH", "WRITE", "READ"} {
		env["RATELIMIT_"+profile+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+profile+"_BURST"] = "1000"
	}
	return startContainer(t, env)
}

// setupServiceWithDefaultRateLimits is for tests that exercise the limiter.
func setupServiceWithDefaultRateLimits(t *testing.T) *service {
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) *service {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &service{
		baseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
		container: container,
	}
}

func (s *service) client() *taskflowsdk.Client {
	return taskflowsdk.NewClient(s.baseURL)
}

// register creates an account and returns its signed-in session.
func (s *service) register(t *testing.T, name, email string) *taskflowsdk.Session {
	t.Helper()
	sess, err := s.client().Register(t.Context(), name, email, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, sess.AccessToken())
	require.NotEmpty(t, sess.RefreshToken())
	return sess
}

// The log mail driver writes the message body to the service log. JSON
// logs may escape the markup around the code.
var otpPattern = regexp.MustCompile(`reset code is (?:<strong>|\\u003cstrong\\u003e)(\d{6})`)

// lastOTP scrapes the most recent reset code mailed by the log driver.
func (s *service) lastOTP(t *testing.T) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		rc, err := s.container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return false
		}
		matches := otpPattern.FindAllSubmatch(raw, -1)
		if len(matches) == 0 {
			return false
		}
		code = string(matches[len(matches)-1][1])
		return true
	}, 10*time.Second, 200*time.Millisecond, "no reset code in service logs")

	return code
}

func ptr[T any](v T) *T { return &v }
