package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/mitchelldurbincs/AIWargame/internal/heuristic"
	"github.com/mitchelldurbincs/AIWargame/internal/search"
	"github.com/mitchelldurbincs/AIWargame/internal/testutil"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	gs := game.NewGameState(testutil.BoardFromRows(t, nil, testutil.DefaultStartRows...), 30, rules.PolicyScore)
	gs.Apply(core.Move(core.NewCoord(3, 3), core.NewCoord(2, 3)))
	gs.Apply(core.Move(core.NewCoord(1, 1), core.NewCoord(1, 2)))
	gs.Apply(core.Move(core.NewCoord(2, 3), core.NewCoord(1, 3)))
	require.NoError(t, gs.Validate(core.Attack(core.NewCoord(1, 2), core.NewCoord(1, 3))))
	gs.Apply(core.Attack(core.NewCoord(1, 2), core.NewCoord(1, 3)))

	data, err := json.Marshal(SnapshotOf(gs))
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	restored, err := decoded.Restore(nil)
	require.NoError(t, err)

	assert.True(t, gs.Equal(restored), "restored state differs:\n%s\nvs\n%s",
		game.RenderState(gs, false), game.RenderState(restored, false))
}

func TestSnapshot_RestoreErrors(t *testing.T) {
	valid := SnapshotOf(game.NewGameState(testutil.BoardFromRows(t, nil, testutil.DuelRows...), 10, rules.PolicyDefender))

	tests := map[string]func(*Snapshot){
		"ragged row":     func(s *Snapshot) { s.Board[1] = ". . ." },
		"bad unit":       func(s *Snapshot) { s.Board[0] = "xQ9 . . ." },
		"no rows":        func(s *Snapshot) { s.Board = nil },
		"size mismatch":  func(s *Snapshot) { s.Rows = 5 },
		"unknown player": func(s *Snapshot) { s.CurrentPlayer = "nobody" },
		"unknown policy": func(s *Snapshot) { s.TurnLimitPolicy = "coin_flip" },
		"negative turns": func(s *Snapshot) { s.TurnsPlayed = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := valid
			s.Board = append([]string(nil), valid.Board...)
			mutate(&s)
			_, err := s.Restore(nil)
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestOptions_FileName(t *testing.T) {
	opts := Options{AlphaBeta: true, MaxTime: 5 * time.Second, MaxTurns: 100}
	assert.Equal(t, "gameTrace-true-5-100-abc.jsonl", opts.FileName("abc"))

	opts = Options{AlphaBeta: false, MaxTime: 1500 * time.Millisecond, MaxTurns: 20}
	assert.Equal(t, "gameTrace-false-1.5-20-abc.jsonl", opts.FileName("abc"))
}

// playRecordedGame plays a short game in which the attacker searches and the defender
// moves randomly, recording everything to buf.
func playRecordedGame(t *testing.T, buf *bytes.Buffer) *game.Engine {
	t.Helper()

	bus := events.NewEventBusWithLogger(zerolog.Nop())
	opts := Options{GameType: "attacker", AlphaBeta: true, MaxDepth: 2, Heuristic: "e1", MaxTurns: 12, TurnLimitPolicy: "defender"}
	rec := NewRecorder(buf, opts, zerolog.Nop())
	bus.Subscribe(rec)

	cfg := game.DefaultGameConfig()
	cfg.MaxTurns = 12
	cfg.EventBus = bus
	cfg.Logger = zerolog.Nop()
	engine, err := game.NewEngine(context.Background(), cfg)
	require.NoError(t, err)

	searcher, err := search.NewSearcher(search.Config{Mode: search.ModeAlphaBeta, MaxDepth: 2, Heuristic: heuristic.KindE1})
	require.NoError(t, err)
	random := search.NewRandomMover(3)

	ctx := context.Background()
	for !engine.IsGameOver() {
		gs := engine.State()
		if gs.CurrentPlayer == core.Attacker {
			res, err := searcher.SuggestMove(ctx, gs)
			require.NoError(t, err)
			d := searcher.Describe()
			bus.Publish(events.NewSearchCompletedEvent(engine.GameID(), gs.CurrentPlayer, gs.TurnsPlayed+1,
				res.Action, res.Score, d.Algorithm, d.Heuristic, d.MaxDepth, res.Stats))
			_, err = engine.ApplyAction(ctx, res.Action)
			require.NoError(t, err)
		} else {
			res, err := random.SuggestMove(ctx, gs)
			require.NoError(t, err)
			_, err = engine.ApplyAction(ctx, res.Action)
			require.NoError(t, err)
		}
	}
	require.Zero(t, rec.Errors())
	return engine
}

func TestRecorder_ReadAndReplay(t *testing.T) {
	var buf bytes.Buffer
	engine := playRecordedGame(t, &buf)

	transcript, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, engine.GameID(), transcript.Header.GameID)
	assert.Equal(t, "e1", transcript.Header.Options.Heuristic)
	assert.Len(t, transcript.Actions, engine.TurnsPlayed())
	require.NotNil(t, transcript.Footer)
	assert.Equal(t, engine.IsTerminal().String(), transcript.Footer.Outcome)

	searched := 0
	for _, a := range transcript.Actions {
		if a.Player == core.Attacker.String() {
			require.NotNil(t, a.Search, "turn %d", a.Turn)
			assert.Equal(t, "alphabeta", a.Search.Algorithm)
			assert.Positive(t, a.Search.Stats.Evaluations)
			searched++
		} else {
			assert.Nil(t, a.Search)
		}
	}
	assert.Positive(t, searched)

	cumulative := transcript.SearchStatistics()
	assert.Equal(t, transcript.Footer.Cumulative.Evaluations, cumulative.Evaluations)
	assert.Equal(t, transcript.Footer.Cumulative.EvaluationsByDepth, cumulative.EvaluationsByDepth)
	assert.Equal(t, searched, cumulative.Searches)

	final, err := Replay(transcript)
	require.NoError(t, err)
	assert.True(t, engine.State().Equal(final))
}

func TestReplay_DetectsTampering(t *testing.T) {
	var buf bytes.Buffer
	playRecordedGame(t, &buf)
	transcript, err := Read(&buf)
	require.NoError(t, err)
	require.NotEmpty(t, transcript.Actions)

	transcript.Actions[0].Board[0] = strings.Replace(transcript.Actions[0].Board[0], "dA9", "dA8", 1)
	_, err = Replay(transcript)
	assert.ErrorIs(t, err, ErrReplayMismatch)
}

func TestReplay_RejectsIllegalAction(t *testing.T) {
	var buf bytes.Buffer
	playRecordedGame(t, &buf)
	transcript, err := Read(&buf)
	require.NoError(t, err)

	transcript.Actions[0].Action = core.Move(core.NewCoord(4, 4), core.NewCoord(4, 3))
	_, err = Replay(transcript)
	assert.ErrorIs(t, err, core.ErrIllegalAction)
}

func TestRead_Malformed(t *testing.T) {
	header := `{"kind":"header","header":{"game_id":"g","initial":{"rows":4,"cols":4,"board":[". . . ."],"current_player":"Attacker"}}}`
	action := `{"kind":"action","action":{"turn":1,"player":"Attacker","action":"self_destruct A0","board":[]}}`
	footer := `{"kind":"footer","footer":{"outcome":"draw"}}`

	tests := map[string]string{
		"empty":               "",
		"not json":            "{",
		"action first":        action,
		"two headers":         header + "\n" + header,
		"unknown kind":        `{"kind":"comment"}`,
		"record after footer": header + "\n" + footer + "\n" + action,
		"bad action text":     header + "\n" + strings.Replace(action, "self_destruct A0", "fly A0", 1),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(input))
			assert.Error(t, err)
		})
	}

	tr, err := Read(strings.NewReader(header + "\n\n" + action + "\n"))
	require.NoError(t, err)
	assert.Len(t, tr.Actions, 1)
	assert.Nil(t, tr.Footer)
}

func TestCreateFileRecorder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	opts := Options{AlphaBeta: false, MaxTime: 2 * time.Second, MaxTurns: 100}

	rec, path, err := CreateFileRecorder(dir, opts, "game-1", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gameTrace-false-2-100-game-1.jsonl"), path)

	board := testutil.BoardFromRows(t, nil, testutil.DuelRows...)
	rec.HandleEvent(events.NewGameStartedEvent("game-1", board, core.Attacker, 100, rules.PolicyDefender))
	require.NoError(t, rec.Close())
	assert.Equal(t, 1, rec.Records())

	tr, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "game-1", tr.Header.GameID)
	restored, err := tr.Header.Initial.Restore(tr.Header.Tables)
	require.NoError(t, err)
	assert.True(t, board.Equal(restored.Board))
}
