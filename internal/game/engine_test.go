package game

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/mitchelldurbincs/AIWargame/internal/testutil"
)

// recorder captures every event published on a bus.
type recorder struct {
	events []events.Event
}

func (r *recorder) ID() string                 { return "recorder" }
func (r *recorder) InterestedIn(string) bool   { return true }
func (r *recorder) HandleEvent(e events.Event) { r.events = append(r.events, e) }

func (r *recorder) ofType(eventType string) []events.Event {
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func rosterFromBoard(b *core.Board) []Placement {
	var out []Placement
	for _, p := range []core.Player{core.Attacker, core.Defender} {
		for _, pu := range b.Units(p) {
			out = append(out, Placement{Coord: pu.Coord, Unit: pu.Unit})
		}
	}
	return out
}

func newTestEngine(t *testing.T, cfg GameConfig) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	bus := events.NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(rec)
	cfg.EventBus = bus
	cfg.Logger = zerolog.Nop()
	e, err := NewEngine(context.Background(), cfg)
	require.NoError(t, err)
	return e, rec
}

func duelConfig(t *testing.T, maxTurns int) GameConfig {
	board := testutil.BoardFromRows(t, nil, testutil.DuelRows...)
	cfg := DefaultGameConfig()
	cfg.BoardDim = 4
	cfg.MaxTurns = maxTurns
	cfg.Roster = rosterFromBoard(board)
	return cfg
}

func TestNewEngine_Defaults(t *testing.T) {
	e, rec := newTestEngine(t, DefaultGameConfig())

	expected := testutil.BoardFromRows(t, nil, testutil.DefaultStartRows...)
	state := e.State()
	assert.True(t, expected.Equal(state.Board), "default roster placement")
	assert.Equal(t, core.Attacker, e.CurrentPlayer())
	assert.Zero(t, e.TurnsPlayed())
	assert.Equal(t, DefaultMaxTurns, state.MaxTurns)
	assert.Equal(t, rules.PolicyDefender, state.TurnLimitPolicy)
	assert.NotEmpty(t, e.GameID())
	assert.False(t, e.IsGameOver())

	started := rec.ofType(events.TypeGameStarted)
	require.Len(t, started, 1)
	gs := started[0].(*events.GameStartedEvent)
	assert.Equal(t, e.GameID(), gs.GameID())
	assert.True(t, expected.Equal(gs.Board))
	assert.Equal(t, DefaultMaxTurns, gs.MaxTurns)
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	tooManyAIs := DefaultRoster(5)
	tooManyAIs = append(tooManyAIs, Placement{Coord: core.NewCoord(2, 2), Unit: core.NewUnit(core.Attacker, core.UnitAI)})

	badTables := core.DefaultUnitTables()
	badTables.Repair[core.UnitTech][core.UnitAI] = 12

	tests := []struct {
		name  string
		mod   func(*GameConfig)
		field string
	}{
		{"zero board", func(c *GameConfig) { c.BoardDim = 0 }, "game.board_dim"},
		{"board too small", func(c *GameConfig) { c.BoardDim = 3 }, "game.board_dim"},
		{"board too large", func(c *GameConfig) { c.BoardDim = 17 }, "game.board_dim"},
		{"zero max turns", func(c *GameConfig) { c.MaxTurns = 0 }, "game.max_turns"},
		{"negative max turns", func(c *GameConfig) { c.MaxTurns = -1 }, "game.max_turns"},
		{"unknown policy", func(c *GameConfig) { c.TurnLimitPolicy = "sudden_death" }, "game.turn_limit_policy"},
		{"invalid tables", func(c *GameConfig) { c.Tables = badTables }, "units.repair"},
		{"two attacker AIs", func(c *GameConfig) { c.Roster = tooManyAIs }, "game.roster"},
		{"missing AI", func(c *GameConfig) { c.Roster = DefaultRoster(5)[1:] }, "game.roster"},
		{"duplicate cell", func(c *GameConfig) {
			c.Roster = append(DefaultRoster(5), Placement{Coord: core.NewCoord(0, 0), Unit: core.NewUnit(core.Attacker, core.UnitVirus)})
		}, "game.roster"},
		{"off board", func(c *GameConfig) {
			c.Roster = append(DefaultRoster(5), Placement{Coord: core.NewCoord(5, 0), Unit: core.NewUnit(core.Attacker, core.UnitVirus)})
		}, "game.roster"},
		{"dead unit", func(c *GameConfig) {
			c.Roster = append(DefaultRoster(5), Placement{Coord: core.NewCoord(2, 2), Unit: core.Unit{Player: core.Attacker, Type: core.UnitVirus}})
		}, "game.roster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			cfg.Logger = zerolog.Nop()
			tt.mod(&cfg)

			e, err := NewEngine(context.Background(), cfg)
			require.Error(t, err)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, core.ErrInvalidConfig)

			var ce *core.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestNewEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(ctx, DefaultGameConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ApplyLegalAction(t *testing.T) {
	e, rec := newTestEngine(t, DefaultGameConfig())
	action := core.Move(core.NewCoord(3, 3), core.NewCoord(2, 3)) // attacker firewall steps up

	fx, err := e.ApplyAction(context.Background(), action)
	require.NoError(t, err)
	assert.Empty(t, fx.Deltas)

	state := e.State()
	assert.Equal(t, 1, state.TurnsPlayed)
	assert.Equal(t, core.Defender, state.CurrentPlayer)
	assert.Equal(t, []core.Action{action}, state.History)
	assert.True(t, state.Board.IsEmpty(core.NewCoord(3, 3)))

	applied := rec.ofType(events.TypeActionApplied)
	require.Len(t, applied, 1)
	ev := applied[0].(*events.ActionAppliedEvent)
	assert.Equal(t, core.Attacker, ev.Player)
	assert.Equal(t, 1, ev.Turn)
	assert.Equal(t, action, ev.Action)
	assert.True(t, state.Board.Equal(ev.Board))
}

func TestEngine_RejectsIllegalActionWithoutMutation(t *testing.T) {
	e, rec := newTestEngine(t, DefaultGameConfig())
	before := e.State()

	// The attacker's AI may not move down.
	_, err := e.ApplyAction(context.Background(), core.Move(core.NewCoord(4, 4), core.NewCoord(4, 5)))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrIllegalAction)
	assert.Equal(t, core.ReasonOutOfBounds, core.ReasonOf(err))

	// Moving the defender's unit on the attacker's turn.
	_, err = e.ApplyAction(context.Background(), core.Move(core.NewCoord(1, 1), core.NewCoord(1, 2)))
	assert.Equal(t, core.ReasonWrongOwner, core.ReasonOf(err))

	assert.True(t, before.Equal(e.State()), "state must be unchanged after rejected actions")

	rejected := rec.ofType(events.TypeActionRejected)
	require.Len(t, rejected, 2)
	assert.Equal(t, core.ReasonWrongOwner, rejected[1].(*events.ActionRejectedEvent).Reason)
	assert.Empty(t, rec.ofType(events.TypeActionApplied))
}

func TestEngine_AIDestroyedEndsGame(t *testing.T) {
	board := testutil.BoardFromRows(t, nil,
		"dA9 aV9 .   .",
		".   .   .   .",
		".   .   .   .",
		".   .   .   aA9",
	)
	cfg := DefaultGameConfig()
	cfg.BoardDim = 4
	cfg.Roster = rosterFromBoard(board)
	e, rec := newTestEngine(t, cfg)

	fx, err := e.ApplyAction(context.Background(), core.Attack(core.NewCoord(0, 1), core.NewCoord(0, 0)))
	require.NoError(t, err)
	require.Len(t, fx.Destroyed, 1)
	assert.Equal(t, core.UnitAI, fx.Destroyed[0].Unit.Type)

	assert.True(t, e.IsGameOver())
	assert.Equal(t, rules.OutcomeAttackerWins, e.IsTerminal())
	assert.Nil(t, e.LegalActions())

	ended := rec.ofType(events.TypeGameEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, rules.OutcomeAttackerWins, ended[0].(*events.GameEndedEvent).Outcome)

	_, err = e.ApplyAction(context.Background(), core.SelfDestruct(core.NewCoord(3, 3)))
	assert.ErrorIs(t, err, core.ErrGameOver)
	assert.Len(t, rec.ofType(events.TypeGameEnded), 1, "game end is announced once")
}

func TestEngine_TurnLimit(t *testing.T) {
	e, rec := newTestEngine(t, duelConfig(t, 2))
	ctx := context.Background()

	_, err := e.ApplyAction(ctx, core.Move(core.NewCoord(2, 2), core.NewCoord(1, 2)))
	require.NoError(t, err)
	assert.False(t, e.IsGameOver())

	_, err = e.ApplyAction(ctx, core.Move(core.NewCoord(0, 0), core.NewCoord(0, 1)))
	require.NoError(t, err)

	assert.Equal(t, rules.OutcomeDefenderWins, e.IsTerminal())
	require.Len(t, rec.ofType(events.TypeGameEnded), 1)
}

func TestEngine_StateIsACopy(t *testing.T) {
	e, _ := newTestEngine(t, DefaultGameConfig())
	s := e.State()
	s.Board.Clear(core.NewCoord(0, 0))
	s.Apply(core.SelfDestruct(core.NewCoord(4, 4)))

	fresh := e.State()
	assert.True(t, fresh.Board.HasAI(core.Defender))
	assert.True(t, fresh.Board.HasAI(core.Attacker))
	assert.Zero(t, fresh.TurnsPlayed)
}

func TestEngine_LegalActionsMatchState(t *testing.T) {
	e, _ := newTestEngine(t, DefaultGameConfig())
	actions := e.LegalActions()
	require.NotEmpty(t, actions)
	assert.Equal(t, e.State().LegalActions(), actions)
	for _, a := range actions {
		assert.NoError(t, e.Validate(a))
	}
}
