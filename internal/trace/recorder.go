package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
	"github.com/rs/zerolog"
)

// Recorder is an event subscriber that writes a transcript as the game is played. Write
// failures are logged and counted; they never interrupt the game.
type Recorder struct {
	opts   Options
	logger zerolog.Logger

	mu         sync.Mutex
	enc        *json.Encoder
	closer     io.Closer
	syncer     interface{ Sync() error }
	pending    *events.SearchCompletedEvent
	cumulative stats.Statistics
	records    int
	errors     int
}

// NewRecorder writes the transcript to w.
func NewRecorder(w io.Writer, opts Options, logger zerolog.Logger) *Recorder {
	r := &Recorder{
		opts:   opts,
		logger: logger.With().Str("component", "TraceRecorder").Logger(),
		enc:    json.NewEncoder(w),
	}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	if s, ok := w.(interface{ Sync() error }); ok {
		r.syncer = s
	}
	return r
}

// CreateFileRecorder creates dir if needed and opens a fresh transcript file named after
// opts and gameID. It returns the recorder and the file's path.
func CreateFileRecorder(dir string, opts Options, gameID string, logger zerolog.Logger) (*Recorder, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create trace directory: %w", err)
	}
	path := filepath.Join(dir, opts.FileName(gameID))
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create trace file: %w", err)
	}
	r := NewRecorder(f, opts, logger)
	r.logger.Info().Str("filename", path).Msg("Recording game transcript")
	return r, path, nil
}

// ID implements events.Subscriber.
func (r *Recorder) ID() string { return "trace-recorder" }

// InterestedIn implements events.Subscriber.
func (r *Recorder) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeGameStarted, events.TypeSearchCompleted, events.TypeActionApplied, events.TypeGameEnded:
		return true
	}
	return false
}

// HandleEvent implements events.Subscriber.
func (r *Recorder) HandleEvent(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case *events.GameStartedEvent:
		r.write(Record{Kind: KindHeader, Header: &Header{
			GameID:    e.GameID(),
			StartedAt: e.Timestamp(),
			Options:   r.opts,
			Tables:    e.Board.Tables,
			Initial: Snapshot{
				Rows:            e.Board.Rows,
				Cols:            e.Board.Cols,
				Board:           EncodeBoard(e.Board),
				CurrentPlayer:   e.FirstPlayer.String(),
				MaxTurns:        e.MaxTurns,
				TurnLimitPolicy: string(e.TurnLimitPolicy),
			},
		}})

	case *events.SearchCompletedEvent:
		r.pending = e
		r.cumulative.Merge(e.Stats)

	case *events.ActionAppliedEvent:
		rec := &ActionRecord{
			Turn:   e.Turn,
			Player: e.Player.String(),
			Action: e.Action,
			Deltas: deltasOf(e.Deltas),
			Board:  EncodeBoard(e.Board),
		}
		if p := r.pending; p != nil && p.Player == e.Player && p.Action == e.Action {
			rec.Search = &SearchRecord{
				Algorithm: p.Algorithm,
				Heuristic: p.Heuristic,
				MaxDepth:  p.MaxDepth,
				Score:     p.Score,
				Stats:     p.Stats,
			}
		}
		r.pending = nil
		r.write(Record{Kind: KindAction, Action: rec})

	case *events.GameEndedEvent:
		footer := &Footer{
			Outcome:     e.Outcome.String(),
			TurnsPlayed: e.TurnsPlayed,
			Duration:    e.Duration,
			Cumulative:  r.cumulative.Clone(),
		}
		if w, ok := e.Outcome.Winner(); ok {
			footer.Winner = w.String()
		}
		r.write(Record{Kind: KindFooter, Footer: footer})
		r.sync()
	}
}

func (r *Recorder) write(rec Record) {
	if err := r.enc.Encode(rec); err != nil {
		r.errors++
		r.logger.Error().Err(err).Str("kind", string(rec.Kind)).Msg("Failed to write trace record")
		return
	}
	r.records++
}

func (r *Recorder) sync() {
	if r.syncer == nil {
		return
	}
	if err := r.syncer.Sync(); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to sync trace file")
	}
}

// Records is the number of records written so far.
func (r *Recorder) Records() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records
}

// Errors is the number of records that could not be written.
func (r *Recorder) Errors() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}

// Close flushes and closes the underlying writer if it is closable.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sync()
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

var _ events.Subscriber = (*Recorder)(nil)
