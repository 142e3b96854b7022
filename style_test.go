package vmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleSequences(t *testing.T) {
	cases := []struct {
		style Style
		want  string
	}{
		{Clear(), "\x1b[0m"},
		{Bold(), "\x1b[1m"},
		{Faint(), "\x1b[2m"},
		{Italic(), "\x1b[3m"},
		{Underline(), "\x1b[4m"},
		{Inverse(), "\x1b[7m"},
		{Foreground(208), "\x1b[38;5;208m"},
		{Background(52), "\x1b[48;5;52m"},
		{Composite(), ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.style.Sequence(), tc.style.Kind.String())
	}
}

func TestCompositeAppliesInOrder(t *testing.T) {
	parts := []Style{Clear(), Bold(), Foreground(208), Background(17)}

	var individual bytes.Buffer
	for _, s := range parts {
		require.NoError(t, s.Apply(&individual))
	}
	var composite bytes.Buffer
	require.NoError(t, Composite(parts...).Apply(&composite))

	assert.Equal(t, individual.String(), composite.String())
}

func TestStyleIsNoop(t *testing.T) {
	assert.True(t, Composite().IsNoop())
	assert.True(t, Composite(Composite(), Composite()).IsNoop())
	assert.False(t, Composite(Composite(), Bold()).IsNoop())
	assert.False(t, Clear().IsNoop())

	var buf bytes.Buffer
	require.NoError(t, Composite(Composite()).Apply(&buf))
	assert.Zero(t, buf.Len())
}

func TestStyleString(t *testing.T) {
	s := Composite(Composite(Clear(), Bold()), Foreground(208), Background(52))
	assert.Equal(t, "clear, bold, fgcolour(208), bgcolour(52)", s.String())
	assert.Equal(t, "", Composite().String())
}
