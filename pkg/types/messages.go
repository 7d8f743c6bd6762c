package types

// Client -> Server
// Claim: {}                    // take ownership of the connected station
//
// Release: {}                  // give it up; station resets to pregame
//
// Shot:
//   ball_id: string            // sender must de-duplicate outcomes per ball
//   scored: boolean
//   hit_rim: boolean
//   money_ball: boolean

// Server -> Client
// StateSnapshot: see snapshot.go
//
// ClaimResult:
//   granted: boolean
//   error: string              // "station already owned" when granted=false
//
// Error:
//   error: string
//
// Events carried inside StateSnapshot:
//   GameStateChanged: { game }
//   ScoreChanged: {}           // the snapshot itself is the payload
//   FireStateChanged: { on_fire }   // edge-triggered, once per transition
//   PositionAdvanced: { position }
//   ShotRegistered: { shot_number }
