package match

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
)

// MoveReader supplies the raw text of a human move such as "D2 C2". It returns io.EOF
// once no more input is available.
type MoveReader interface {
	ReadMove(ctx context.Context, p core.Player) (string, error)
}

// MoveReaderFunc adapts a plain function to MoveReader.
type MoveReaderFunc func(ctx context.Context, p core.Player) (string, error)

func (f MoveReaderFunc) ReadMove(ctx context.Context, p core.Player) (string, error) {
	return f(ctx, p)
}

type lineReader struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewLineReader reads one move per line from r, writing a prompt to prompt first.
func NewLineReader(r io.Reader, prompt io.Writer) MoveReader {
	if prompt == nil {
		prompt = io.Discard
	}
	return &lineReader{scanner: bufio.NewScanner(r), prompt: prompt}
}

func (lr *lineReader) ReadMove(ctx context.Context, p core.Player) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(lr.prompt, "%s, enter your move: ", p)
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return lr.scanner.Text(), nil
}
