/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "falkordb_vercel"
)

var (
	once     sync.Once
	registry *prometheus.Registry

	// Enabled controls whether collectors are registered on Init.
	// Collectors always exist so callers never need a nil check.
	Enabled = true

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"method", "endpoint"},
	)

	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to upstream APIs",
		},
		[]string{"upstream", "operation", "status"},
	)

	UpstreamRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream API requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"upstream", "operation"},
	)

	OnboardingStepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "onboarding_steps_total",
			Help:      "Total number of onboarding steps by outcome",
		},
		[]string{"step", "result"},
	)

	SecretsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secrets_published_total",
			Help:      "Total number of environment variable writes by outcome",
		},
		[]string{"result"},
	)

	PendingLinksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pending_links_total",
			Help:      "Pending link lifecycle events",
		},
		[]string{"event"},
	)

	WebhookDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Completion webhook deliveries by response status",
		},
		[]string{"status"},
	)

	SessionOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_operations_total",
			Help:      "Session store operations by backend and outcome",
		},
		[]string{"backend", "operation", "result"},
	)

	Up = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "up",
			Help:      "Whether the service is up",
		},
	)
)

func initRegistry() {
	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		UpstreamRequestsTotal,
		UpstreamRequestDurationSeconds,
		OnboardingStepsTotal,
		SecretsPublishedTotal,
		PendingLinksTotal,
		WebhookDeliveriesTotal,
		SessionOperationsTotal,
		Up,
	)

	Up.Set(1)
}

// Init initializes the metrics registry with all collectors.
// Set Enabled before the first call.
func Init() *prometheus.Registry {
	once.Do(func() {
		if !Enabled {
			registry = prometheus.NewRegistry()
			return
		}
		initRegistry()
	})

	return registry
}

// GetRegistry returns the prometheus registry
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return Init()
	}
	return registry
}

// Handler serves the registry in the prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Result returns "success" or "error" for a metrics label
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
