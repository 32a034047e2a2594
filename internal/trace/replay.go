package trace

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
)

// ErrReplayMismatch is returned when replaying a transcript does not reproduce a recorded board.
var ErrReplayMismatch = errors.New("replay does not match transcript")

// Replay rebuilds the game from the header's initial position by re-validating and
// re-applying every recorded action. Each resulting board, and the footer's outcome, must
// match what was recorded.
func Replay(t *Transcript) (*game.GameState, error) {
	gs, err := t.Header.Initial.Restore(t.Header.Tables)
	if err != nil {
		return nil, err
	}

	for i, rec := range t.Actions {
		if rec.Player != gs.CurrentPlayer.String() {
			return nil, fmt.Errorf("%w: action %d played by %s, expected %s", ErrReplayMismatch, i+1, rec.Player, gs.CurrentPlayer)
		}
		if err := gs.Validate(rec.Action); err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		gs.Apply(rec.Action)

		if gs.TurnsPlayed != rec.Turn {
			return nil, fmt.Errorf("%w: action %d recorded as turn %d, replayed as %d", ErrReplayMismatch, i+1, rec.Turn, gs.TurnsPlayed)
		}
		recorded, err := DecodeBoard(rec.Board, t.Header.Tables)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		if !recorded.Equal(gs.Board) {
			return nil, fmt.Errorf("%w: board after turn %d differs", ErrReplayMismatch, rec.Turn)
		}
	}

	if f := t.Footer; f != nil {
		if f.TurnsPlayed != gs.TurnsPlayed {
			return nil, fmt.Errorf("%w: footer says %d turns, replayed %d", ErrReplayMismatch, f.TurnsPlayed, gs.TurnsPlayed)
		}
		if outcome := gs.Outcome(); outcome.String() != f.Outcome {
			return nil, fmt.Errorf("%w: footer outcome %s, replayed %s", ErrReplayMismatch, f.Outcome, outcome)
		}
	}
	return gs, nil
}

// SearchStatistics merges the statistics of every searched action in the transcript.
// For a finished game it equals the footer's cumulative statistics.
func (t *Transcript) SearchStatistics() stats.Statistics {
	var total stats.Statistics
	for _, rec := range t.Actions {
		if rec.Search != nil {
			total.Merge(rec.Search.Stats)
		}
	}
	return total
}
