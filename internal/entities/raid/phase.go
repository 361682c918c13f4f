package raid

// Phase is a raid lifecycle state
type Phase string

// Raid phases
const (
	PhaseMatchmaking Phase = "matchmaking"
	PhaseLobby       Phase = "lobby"
	PhaseBattle      Phase = "battle"
	PhaseResult      Phase = "result"
	PhaseVictory     Phase = "victory"
	PhaseReward      Phase = "reward"
	PhaseDefeat      Phase = "defeat"
	PhaseComplete    Phase = "complete"
	PhaseAbandoned   Phase = "abandoned"
)

// Terminal reports whether no further actions are accepted in p
func (p Phase) Terminal() bool {
	switch p {
	case PhaseDefeat, PhaseComplete, PhaseAbandoned:
		return true
	}
	return false
}

// Member is a raid party slot. Bots are simulated locally.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bot   bool   `json:"bot"`
	Level int    `json:"level"`
}
