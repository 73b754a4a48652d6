package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/kitcart/api/responses"
	"github.com/angelmondragon/kitcart/pkg/config"
	pkgerrors "github.com/angelmondragon/kitcart/pkg/errors"
	"github.com/angelmondragon/kitcart/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is anything the readiness check can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kitcart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when cart storage answers a ping.
func HealthReady(cfg *config.Config, storage Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kitcart-Env", cfg.App.Env)
		if storage != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if err := storage.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unavailable").
					WithDetails(map[string]string{"storage": cfg.Storage.Driver}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "storage": cfg.Storage.Driver})
	}
}
