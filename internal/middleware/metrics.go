package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "weave_redis_errors_total",
		Help: "Total number of failed Redis commands.",
	},
	[]string{"command"},
)

// InvitationOutcomes counts invitation mutations by outcome
// (created, auto_accepted, accepted, declined, withdrawn, noop).
var InvitationOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "weave_invitation_outcomes_total",
		Help: "Total invitation mutations by outcome.",
	},
	[]string{"outcome"},
)

// InitMetrics creates the fiberprometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
