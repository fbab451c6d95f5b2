package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/dmitrijs2005/carpark/internal/common"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// LineReader is where the REPL gets its input from.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Close() error
}

// NewLineReader uses readline (history, masked passwords) when in is a
// terminal and a plain buffered reader otherwise.
func NewLineReader(in *os.File, out io.Writer, historyFile string) (LineReader, error) {
	if !isTerminal(int(in.Fd())) {
		return &pipeInput{reader: bufio.NewReader(in), w: out, fd: int(in.Fd())}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           in,
		Stdout:          out,
	})
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	return &readlineInput{rl: rl}, nil
}

type readlineInput struct {
	rl *readline.Instance
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

func (r *readlineInput) ReadPassword(prompt string) (string, error) {
	pw, err := r.rl.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (r *readlineInput) Close() error {
	return r.rl.Close()
}

type pipeInput struct {
	reader *bufio.Reader
	w      io.Writer
	fd     int
}

func (p *pipeInput) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.w, prompt); err != nil {
		return "", err
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword reads without echo when the descriptor is a terminal and as a
// plain line otherwise.
func (p *pipeInput) ReadPassword(prompt string) (string, error) {
	if !isTerminal(p.fd) {
		return p.ReadLine(prompt)
	}
	if _, err := fmt.Fprint(p.w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (p *pipeInput) Close() error {
	return nil
}

// GetMultiline prints a prompt and reads lines until an empty one. The lines
// are joined with '\n'.
func GetMultiline(in LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := in.ReadLine(". ")
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

// confirmer answers dashboard confirmations from the same input.
type confirmer struct {
	in LineReader
}

func (c confirmer) Confirm(_ context.Context, prompt string) bool {
	answer, err := c.in.ReadLine(prompt + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
