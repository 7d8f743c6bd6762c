package types

// StateSnapshot:
//   version: number            // monotonic per station; apply newest, discard older
//   station: string
//   owner: string              // "" when the station is unowned
//   state:
//     game: "pregame" | "playing" | "gameover"
//     score: number
//     lives: number
//     streak: number
//     on_fire: boolean
//     flash: { points_earned: number (-1 = none), money_ball: boolean, on_fire: boolean }
//     total_shots: number
//     shots_since_advance: number
//     hoop_position: number
//     rules: { starting_lives, fire_threshold, shots_per_advance, base_points, money_ball_points, hoop_positions }
//   events: Event[]            // what changed in this snapshot, for audio/VFX
