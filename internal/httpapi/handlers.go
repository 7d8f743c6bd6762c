package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/courtside/hoopshot-backend/internal/registry"
	"github.com/courtside/hoopshot-backend/internal/session"
)

type stationSummary struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Owner     string `json:"owner,omitempty"`
}

// ListStations enumerates every station with its availability, in creation
// order, for discovery/lobby UIs.
func ListStations(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stations := reg.All()
		out := make([]stationSummary, 0, len(stations))
		for _, s := range stations {
			sum := stationSummary{ID: string(s.ID()), Available: s.IsAvailable()}
			if owner, ok := s.Owner(); ok {
				sum.Owner = string(owner)
			}
			out = append(out, sum)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

// GetStation returns the current view of one station so late-join UIs can
// render before their websocket catches up.
func GetStation(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := session.StationID(chi.URLParam(r, "id"))
		st, err := reg.Get(id)
		if err != nil {
			http.Error(w, "station not found", http.StatusNotFound)
			return
		}

		reply := make(chan session.View, 1)
		st.Inbox() <- session.GetView{Reply: reply}

		select {
		case view := <-reply:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(struct {
				ID      string `json:"id"`
				Version int    `json:"version"`
				Owner   string `json:"owner,omitempty"`
				State   any    `json:"state"`
			}{
				ID:      string(st.ID()),
				Version: view.Version,
				Owner:   string(view.Owner),
				State:   view.State,
			})
		case <-time.After(2 * time.Second):
			http.Error(w, "station busy", http.StatusServiceUnavailable)
		}
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
