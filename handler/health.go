package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// StatusChecker reports whether a dependency is reachable.
type StatusChecker func(ctx context.Context) error

type HealthHandler struct {
	check   StatusChecker
	timeout time.Duration
	log     *otelzap.SugaredLogger
}

func NewHealthHandler(check StatusChecker, log *otelzap.SugaredLogger) *HealthHandler {
	return &HealthHandler{
		check:   check,
		timeout: time.Second,
		log:     log,
	}
}

// Livez answers as long as the process can serve requests.
func (hh HealthHandler) Livez(rw http.ResponseWriter, r *http.Request) {
	respond(r.Context(), rw, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports whether the database is reachable.
func (hh HealthHandler) Readyz(rw http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), hh.timeout)
	defer cancel()

	if err := hh.check(ctx); err != nil {
		hh.log.Ctx(ctx).Warnw("Readyz", "error", err.Error())
		respond(r.Context(), rw, http.StatusServiceUnavailable, map[string]string{"status": "db not ready"})
		return
	}

	respond(r.Context(), rw, http.StatusOK, map[string]string{"status": "ok"})
}
