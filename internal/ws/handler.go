package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courtside/hoopshot-backend/internal/registry"
	"github.com/courtside/hoopshot-backend/internal/session"
	"github.com/courtside/hoopshot-backend/internal/types"
)

// Handler upgrades one connection per participant per station. Snapshots
// stream out on a writer goroutine; claim/release/shot events come in on
// the reader loop. When the reader exits for any reason the participant is
// treated as disconnected and routed through the registry.
func Handler(reg *registry.Registry, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID := session.StationID(r.URL.Query().Get("station"))
		if stationID == "" {
			http.Error(w, "missing station", http.StatusBadRequest)
			return
		}

		st, err := reg.Get(stationID)
		if err != nil {
			http.Error(w, "station not found", http.StatusNotFound)
			return
		}

		participant := session.ParticipantID(r.URL.Query().Get("participant"))
		if participant == "" {
			participant = session.ParticipantID(uuid.NewString())
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		observerID := string(participant) + "/" + uuid.NewString()[:8]

		// Only a connection that was granted a claim forfeits ownership on
		// close; a pure observer connection closing must not release a
		// station this participant owns elsewhere.
		claimed := false

		st.Inbox() <- session.Join{ObserverID: observerID, Outbox: out}
		defer func() {
			st.Inbox() <- session.Leave{ObserverID: observerID}
			if claimed {
				reg.HandleDisconnect(participant)
			}
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{
					Type:    "StateSnapshot",
					Station: string(stationID),
					Version: snap.Version,
					Owner:   string(snap.Owner),
					State:   &snap.State,
					Events:  snap.Events,
				}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		log.Info("participant connected",
			zap.String("station", string(stationID)),
			zap.String("participant", string(participant)))

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Abnormal exit: disconnect handling in defer.
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			switch cm.Type {
			case "Claim":
				reply := make(chan error, 1)
				st.Inbox() <- session.Claim{Participant: participant, Reply: reply}
				res := <-reply
				if res == nil {
					claimed = true
				}
				msg := types.ServerMessage{Type: "ClaimResult", Granted: res == nil}
				if res != nil {
					msg.Error = res.Error()
				}
				payload, _ := json.Marshal(msg)
				_ = conn.Write(r.Context(), websocket.MessageText, payload)

			case "Release":
				st.Inbox() <- session.Release{Participant: participant, ToPregame: true}

			case "Shot":
				// Local-first: no ack, the snapshot broadcast is the feedback.
				st.Inbox() <- session.Shot{
					Participant: participant,
					Scored:      cm.Scored,
					HitRim:      cm.HitRim,
					MoneyBall:   cm.MoneyBall,
				}

			default:
				writeError(r.Context(), conn, "unknown type")
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, text string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: text})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}
