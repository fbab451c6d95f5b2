package cli

import (
	"io"
)

// fakeInput replays scripted lines and passwords and records prompts.
type fakeInput struct {
	lines     []string
	passwords []string
	prompts   []string
	closed    bool
}

func (f *fakeInput) ReadLine(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeInput) ReadPassword(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.passwords) == 0 {
		return "", io.EOF
	}
	pw := f.passwords[0]
	f.passwords = f.passwords[1:]
	return pw, nil
}

func (f *fakeInput) Close() error {
	f.closed = true
	return nil
}
