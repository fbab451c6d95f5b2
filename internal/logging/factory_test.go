package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsBackend(t *testing.T) {
	var buf bytes.Buffer

	l, flush, err := New("", "info", &buf)
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)
	l.Info(context.Background(), "hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NoError(t, flush())

	l, flush, err = New("ZAP", "debug", &buf)
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)
	_ = flush()
}
