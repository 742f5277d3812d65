package leaderboardservice

import "errors"

// ErrNoStandings indicates an event with no materialized standings where at
// least one is required, such as chart rendering.
var ErrNoStandings = errors.New("no standings for event")
