package game

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeVictory
	OutcomeTimeUp    // clock ran out with no crop standing
	OutcomeCropsLost // every crop destroyed before the clock ran out
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeTimeUp:
		return "time_up"
	case OutcomeCropsLost:
		return "crops_lost"
	case OutcomeInProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// Outcome classifies the session. A loss with time still on the clock can
// only come from losing every crop.
func (g *Engine) Outcome() Outcome {
	switch {
	case !g.gameOver:
		return OutcomeInProgress
	case g.gameWon:
		return OutcomeVictory
	case g.remaining <= 0:
		return OutcomeTimeUp
	default:
		return OutcomeCropsLost
	}
}
