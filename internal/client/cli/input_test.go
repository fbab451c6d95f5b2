package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipe(s string, w io.Writer) *pipeInput {
	return &pipeInput{reader: bufio.NewReader(strings.NewReader(s)), w: w}
}

func stubTerminal(t *testing.T, terminal bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return terminal }
	t.Cleanup(func() { isTerminal = orig })
}

func TestPipeInput_ReadLine(t *testing.T) {
	var out bytes.Buffer
	in := pipe("hello world\r\nlast", &out)

	got, err := in.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "> ", out.String())

	got, err = in.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = in.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPipeInput_ReadPassword_NotTerminal(t *testing.T) {
	stubTerminal(t, false)

	in := pipe("s3cret\n", io.Discard)
	got, err := in.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestPipeInput_ReadPassword_Terminal(t *testing.T) {
	stubTerminal(t, true)
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }
	var out bytes.Buffer
	got, err := pipe("", &out).ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "typed", got)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = pipe("", io.Discard).ReadPassword("Password: ")
	assert.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	in := &fakeInput{lines: []string{"a", "b", "", "ignored"}}
	var out bytes.Buffer

	got, err := GetMultiline(in, "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
	assert.Contains(t, out.String(), "Enter text")
	assert.Equal(t, []string{"ignored"}, in.lines)
}

func TestGetMultiline_EOF(t *testing.T) {
	in := &fakeInput{lines: []string{"only"}}
	got, err := GetMultiline(in, "x", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestConfirmer(t *testing.T) {
	tests := []struct {
		answer []string
		want   bool
	}{
		{[]string{"y"}, true},
		{[]string{" YES "}, true},
		{[]string{"n"}, false},
		{[]string{""}, false},
		{nil, false},
	}
	for _, tt := range tests {
		in := &fakeInput{lines: tt.answer}
		got := confirmer{in: in}.Confirm(context.Background(), "Continue?")
		assert.Equal(t, tt.want, got, "%v", tt.answer)
		assert.Equal(t, "Continue? [y/N] ", in.prompts[0])
	}
}
