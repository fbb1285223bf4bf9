package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"

	promdto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "docker.io/library/postgres:16-alpine"
	postgresPassword = "secret"
)

type TestContext struct {
	dir    string
	binary string

	postgres testcontainers.Container
	dsn      string

	gateway *httptest.Server
	pushed  *pushedMetrics
}

// CreateTestContext builds the binary, starts a postgres instance and a fake push gateway.
func CreateTestContext(ctx context.Context, dir string) (TestContext, error) {
	ret := TestContext{
		dir:    dir,
		binary: filepath.Join(dir, "eventlog-analyzer"),
		pushed: &pushedMetrics{},
	}

	err := buildBinary(ret.binary)
	if err != nil {
		return ret, fmt.Errorf("failed to build binary: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": postgresPassword,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	ret.postgres, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return ret, fmt.Errorf("failed to start postgres: %w", err)
	}

	host, err := ret.postgres.Host(ctx)
	if err != nil {
		return ret, fmt.Errorf("failed to get postgres host: %w", err)
	}

	port, err := ret.postgres.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return ret, fmt.Errorf("failed to get postgres port: %w", err)
	}

	ret.dsn = fmt.Sprintf("postgres://postgres:%s@%s:%s/postgres?sslmode=disable", postgresPassword, host, port.Port())

	ret.gateway = httptest.NewServer(ret.pushed)

	return ret, nil
}

func (t TestContext) Close(ctx context.Context) error {
	if t.gateway != nil {
		t.gateway.Close()
	}

	if t.postgres == nil {
		return nil
	}

	return t.postgres.Terminate(ctx)
}

// WriteLog writes the event log and returns its path.
func (t TestContext) WriteLog(name string, content string) (string, error) {
	path := filepath.Join(t.dir, name)

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// Run runs the binary with the given config overrides (EVENTLOG_* env variables).
func (t TestContext) Run(overrides map[string]string, args ...string) (string, error) {
	env := append(os.Environ(),
		"EVENTLOG_STORE_KIND=postgres",
		"EVENTLOG_STORE_POSTGRES_DSN="+t.dsn,
		"EVENTLOG_METRICS_PUSHGATEWAY_URL="+t.gateway.URL,
		"EVENTLOG_LOGS_ENCODER=json",
	)

	for key, value := range overrides {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return runCommand(fmt.Sprintf("%s %s", t.binary, joinArgs(args)), env)
}

// LastPushedCounter returns the value of a counter pushed by the last run, 0 if absent.
func (t TestContext) LastPushedCounter(name string, label string, value string) float64 {
	return t.pushed.counter(name, label, value)
}

type pushedMetrics struct {
	mu       sync.Mutex
	families map[string]*promdto.MetricFamily
}

func (p *pushedMetrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	decoder := expfmt.NewDecoder(r.Body, expfmt.ResponseFormat(r.Header))

	families := make(map[string]*promdto.MetricFamily)

	for {
		family := &promdto.MetricFamily{}

		err := decoder.Decode(family)
		if err != nil {
			break
		}

		families[family.GetName()] = family
	}

	p.mu.Lock()
	p.families = families
	p.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (p *pushedMetrics) counter(name string, label string, value string) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	family, ok := p.families[name]
	if !ok {
		return 0
	}

	for _, metric := range family.GetMetric() {
		if label == "" {
			return metric.GetCounter().GetValue()
		}

		for _, pair := range metric.GetLabel() {
			if pair.GetName() == label && pair.GetValue() == value {
				return metric.GetCounter().GetValue()
			}
		}
	}

	return 0
}
