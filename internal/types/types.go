package types

import (
	"github.com/courtside/hoopshot-backend/internal/engine"
)

// ClientMessage is what input collaborators (trigger volumes, collision
// detection) send over the wire. BallID is carried for logging only; the
// sender is responsible for de-duplicating outcomes per ball before
// reporting them.
type ClientMessage struct {
	Type      string `json:"type"` // "Claim" | "Release" | "Shot"
	BallID    string `json:"ball_id,omitempty"`
	Scored    bool   `json:"scored,omitempty"`
	HitRim    bool   `json:"hit_rim,omitempty"`
	MoneyBall bool   `json:"money_ball,omitempty"`
}

type ServerMessage struct {
	Type    string         `json:"type"` // "StateSnapshot" | "ClaimResult" | "Error"
	Station string         `json:"station,omitempty"`
	Version int            `json:"version,omitempty"`
	Owner   string         `json:"owner,omitempty"`
	State   *engine.State  `json:"state,omitempty"`
	Events  []engine.Event `json:"events,omitempty"`
	Granted bool           `json:"granted,omitempty"`
	Error   string         `json:"error,omitempty"`
}
