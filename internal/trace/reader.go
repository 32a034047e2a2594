package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformedTranscript is returned when a transcript's records are out of order or invalid.
var ErrMalformedTranscript = errors.New("malformed transcript")

// maxLineSize bounds a single record; a 16x16 board with full statistics is far below it.
const maxLineSize = 1 << 20

// Transcript is a parsed transcript. Footer is nil for a game that did not finish.
type Transcript struct {
	Header  Header
	Actions []ActionRecord
	Footer  *Footer
}

// ReadFile parses the transcript at path.
func ReadFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a transcript. Blank lines are ignored.
func Read(r io.Reader) (*Transcript, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var t Transcript
	var sawHeader bool
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTranscript, line, err)
		}
		if t.Footer != nil {
			return nil, fmt.Errorf("%w: line %d: record after footer", ErrMalformedTranscript, line)
		}

		switch rec.Kind {
		case KindHeader:
			if sawHeader || rec.Header == nil {
				return nil, fmt.Errorf("%w: line %d: unexpected header", ErrMalformedTranscript, line)
			}
			t.Header = *rec.Header
			sawHeader = true
		case KindAction:
			if !sawHeader || rec.Action == nil {
				return nil, fmt.Errorf("%w: line %d: action before header", ErrMalformedTranscript, line)
			}
			t.Actions = append(t.Actions, *rec.Action)
		case KindFooter:
			if !sawHeader || rec.Footer == nil {
				return nil, fmt.Errorf("%w: line %d: footer before header", ErrMalformedTranscript, line)
			}
			t.Footer = rec.Footer
		default:
			return nil, fmt.Errorf("%w: line %d: unknown record kind %q", ErrMalformedTranscript, line, rec.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transcript: %w", err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: no header", ErrMalformedTranscript)
	}
	return &t, nil
}
