package factory

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
)

const pushTimeout = 5 * time.Second

// PushMetrics sends the gathered metrics to the push gateway, a batch run does not live long enough to be scraped.
// It is a no-op if no gateway is configured.
func PushMetrics(ctx context.Context, conf config.PushGateway, gatherer prometheus.Gatherer) error {
	if conf.URL == "" {
		return nil
	}

	instance, err := os.Hostname()
	if err != nil {
		instance = "unknown"
	}

	pusher := push.New(conf.URL, conf.Job).
		Gatherer(gatherer).
		Grouping("instance", instance).
		Client(&http.Client{Timeout: pushTimeout})

	err = pusher.PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", conf.URL, err)
	}

	return nil
}
