package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "shorty/internal/log"
	"shorty/internal/options"
	"shorty/models"
)

const (
	healthOK          = "ok"
	healthUnavailable = "unavailable"
)

type healthResponse struct {
	Status      string    `json:"status"`
	OptionStore string    `json:"optionStore"`
	ActiveTheme string    `json:"activeTheme,omitempty"`
	Error       string    `json:"error,omitempty"`
	Time        time.Time `json:"time"`
}

// Health reports whether the option store holding the active theme can be
// read. It answers 503 while the store is missing or failing.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: healthOK, OptionStore: healthOK, Time: time.Now().UTC()}
	code := http.StatusOK

	active, _, err := options.New(database).Get(r.Context(), models.OptionActiveTheme)
	if err != nil {
		applog.Warn(r.Context(), "option store unreachable", "error", err)
		resp.Status = healthUnavailable
		resp.OptionStore = healthUnavailable
		resp.Error = err.Error()
		code = http.StatusServiceUnavailable
	} else {
		resp.ActiveTheme = active
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		return
	}
	applog.Debug(r.Context(), "health check responded", "status", resp.Status, "activeTheme", resp.ActiveTheme)
}
