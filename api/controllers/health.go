package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/duracem/nameplate-backend/api/responses"
	"github.com/duracem/nameplate-backend/pkg/config"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

// HealthPinger is satisfied by the database, redis, and storage clients.
type HealthPinger interface {
	Ping(ctx context.Context) error
}

// HealthLive answers as soon as the process serves requests.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Nameplate-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency. Optional dependencies are
// passed as nil and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]HealthPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := make(map[string]string, len(deps))
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				status[name] = "disabled"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				status[name] = "down"
				healthy = false
				continue
			}
			status[name] = "up"
		}

		w.Header().Set("X-Nameplate-Env", cfg.App.Env)
		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(map[string]any{"dependencies": status}))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": status})
	}
}
