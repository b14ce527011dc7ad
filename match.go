package main

// MatchPhase represents the lifecycle of the arena's match
type MatchPhase int

const (
	PhaseLobby   MatchPhase = 0
	PhasePlaying MatchPhase = 1
	PhaseEnded   MatchPhase = 2
)

const (
	MaxKills        = 30      // kill count that ends the match
	MatchDurationMs = 600_000 // 10 minutes
)

// Winner kinds reported in gameOver
const (
	WinnerPlayer = "PLAYER"
	WinnerTeam   = "TEAM"
)

// MatchResult records the decided outcome
type MatchResult struct {
	Winner string `json:"winner"`
	Kind   string `json:"winnerType"`
}

// MatchState is owned by the match lifecycle: only lifecycle transitions
// mutate Phase and Result, everything else reads.
type MatchState struct {
	Phase       MatchPhase
	RemainingMs float64
	BlueKills   int
	RedKills    int
	Result      *MatchResult
}

// NewMatchState starts a fresh match clock in the PLAYING phase; solo
// pilots fight the moment they join, team matches go through the lobby.
func NewMatchState(durationMs float64) MatchState {
	return MatchState{
		Phase:       PhasePlaying,
		RemainingMs: durationMs,
	}
}

// killLimitResult returns a result if any solo player or team has reached
// the kill limit, nil otherwise. Both modes compare kill counts.
func (ms *MatchState) killLimitResult(players map[string]*Player, maxKills int) *MatchResult {
	for _, p := range players {
		if p.Team == TeamSolo && p.Kills >= maxKills {
			return &MatchResult{Winner: p.Name, Kind: WinnerPlayer}
		}
	}
	if ms.BlueKills >= maxKills {
		return &MatchResult{Winner: "BLUE TEAM", Kind: WinnerTeam}
	}
	if ms.RedKills >= maxKills {
		return &MatchResult{Winner: "RED TEAM", Kind: WinnerTeam}
	}
	return nil
}

// timeExpiryResult decides the winner when the clock runs out: highest
// individual score, overridden by whichever team has strictly more kills.
func (ms *MatchState) timeExpiryResult(players map[string]*Player) *MatchResult {
	result := &MatchResult{Winner: "NOBODY", Kind: WinnerPlayer}
	topScore := -1
	for _, p := range players {
		if p.InLobby {
			continue
		}
		if p.Score > topScore {
			topScore = p.Score
			result.Winner = p.Name
		}
	}
	if ms.BlueKills > ms.RedKills {
		return &MatchResult{Winner: "BLUE TEAM", Kind: WinnerTeam}
	}
	if ms.RedKills > ms.BlueKills {
		return &MatchResult{Winner: "RED TEAM", Kind: WinnerTeam}
	}
	return result
}

// AssignTeam balances a new team-mode player onto the smaller side
func AssignTeam(players map[string]*Player) Team {
	blueCount := 0
	redCount := 0
	for _, p := range players {
		switch p.Team {
		case TeamBlue:
			blueCount++
		case TeamRed:
			redCount++
		}
	}
	if blueCount <= redCount {
		return TeamBlue
	}
	return TeamRed
}
