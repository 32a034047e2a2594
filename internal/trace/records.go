// Package trace writes and reads game transcripts. A transcript is a JSON-lines file: one
// header record, one record per applied action and, for finished games, one footer record.
// It holds enough to replay the game and to reproduce every search statistic reported
// during play.
package trace

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
)

// Kind tags each line of a transcript.
type Kind string

const (
	KindHeader Kind = "header"
	KindAction Kind = "action"
	KindFooter Kind = "footer"
)

// Record is one line of a transcript. Exactly one payload field is set, matching Kind.
type Record struct {
	Kind   Kind          `json:"kind"`
	Header *Header       `json:"header,omitempty"`
	Action *ActionRecord `json:"action,omitempty"`
	Footer *Footer       `json:"footer,omitempty"`
}

// Options are the game settings recorded in the header.
type Options struct {
	GameType        string        `json:"game_type"`
	AlphaBeta       bool          `json:"alpha_beta"`
	MaxDepth        int           `json:"max_depth"`
	MaxTime         time.Duration `json:"max_time"`
	Heuristic       string        `json:"heuristic"`
	MaxTurns        int           `json:"max_turns"`
	TurnLimitPolicy string        `json:"turn_limit_policy"`
}

// FileName returns the transcript file name for a game, e.g.
// gameTrace-true-5-100-<id>.jsonl for alpha-beta, a 5 second budget and 100 turns.
func (o Options) FileName(gameID string) string {
	return fmt.Sprintf("gameTrace-%t-%g-%d-%s.jsonl", o.AlphaBeta, o.MaxTime.Seconds(), o.MaxTurns, gameID)
}

// Header opens a transcript.
type Header struct {
	GameID    string           `json:"game_id"`
	StartedAt time.Time        `json:"started_at"`
	Options   Options          `json:"options"`
	Tables    *core.UnitTables `json:"tables"`
	Initial   Snapshot         `json:"initial"`
}

// Delta is one health change caused by an action.
type Delta struct {
	Cell   string `json:"cell"`
	Unit   string `json:"unit"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// SearchRecord describes how a computer-chosen action was found.
type SearchRecord struct {
	Algorithm string           `json:"algorithm"`
	Heuristic string           `json:"heuristic,omitempty"`
	MaxDepth  int              `json:"max_depth,omitempty"`
	Score     int              `json:"score"`
	Stats     stats.Statistics `json:"stats"`
}

// ActionRecord is one applied action. Turn counts completed turns including this one.
type ActionRecord struct {
	Turn   int           `json:"turn"`
	Player string        `json:"player"`
	Action core.Action   `json:"action"`
	Deltas []Delta       `json:"deltas,omitempty"`
	Board  []string      `json:"board"`
	Search *SearchRecord `json:"search,omitempty"`
}

// Footer closes the transcript of a finished game.
type Footer struct {
	Outcome     string           `json:"outcome"`
	Winner      string           `json:"winner,omitempty"`
	TurnsPlayed int              `json:"turns_played"`
	Duration    time.Duration    `json:"duration"`
	Cumulative  stats.Statistics `json:"cumulative"`
}

func deltasOf(hd []core.HealthDelta) []Delta {
	if len(hd) == 0 {
		return nil
	}
	out := make([]Delta, len(hd))
	for i, d := range hd {
		out[i] = Delta{Cell: d.Coord.String(), Unit: unitName(d.Unit), Before: d.Before, After: d.After}
	}
	return out
}

// unitName renders the owner and type of u without its health, e.g. "aV".
func unitName(u core.Unit) string {
	return string([]byte{u.Player.Letter(), u.Type.Letter()})
}
