package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readChain(t *testing.T, names ...string) (string, error) {
	t.Helper()
	logger := zerolog.Nop()
	chain, err := newInputChain(context.Background(), names, &logger)
	require.NoError(t, err)
	defer func() { assert.NoError(t, chain.Close()) }()
	data, err := io.ReadAll(chain)
	return string(data), err
}

func TestInputChainSources(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "a.md", "one ")
	second := writeInput(t, dir, "b.md", "two")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{name: "file", names: []string{first}, want: "one "},
		{name: "file url", names: []string{"file://" + second}, want: "two"},
		{name: "http", names: []string{srv.URL}, want: "remote"},
		{name: "concatenated", names: []string{first, second, srv.URL}, want: "one tworemote"},
		{name: "empty file in between", names: []string{first, writeInput(t, dir, "empty.md", ""), second}, want: "one two"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readChain(t, tc.names...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInputChainErrorsNameTheSource(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := readChain(t, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), srv.URL)
	assert.Contains(t, err.Error(), "404")

	dir := t.TempDir()
	first := writeInput(t, dir, "a.md", "kept")
	missing := filepath.Join(dir, "missing.md")
	got, err := readChain(t, first, missing)
	require.Error(t, err)
	assert.Equal(t, "kept", got)
	assert.Contains(t, err.Error(), missing)
}

func TestInputChainOpensLazily(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	first := writeInput(t, t.TempDir(), "a.md", "early")
	logger := zerolog.Nop()
	chain, err := newInputChain(context.Background(), []string{first, srv.URL}, &logger)
	require.NoError(t, err)
	buf := make([]byte, 5)
	n, err := chain.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "early", string(buf[:n]))
	require.NoError(t, chain.Close())
	assert.Zero(t, hits.Load())
}

func TestInputChainRejectsEmptyArgument(t *testing.T) {
	logger := zerolog.Nop()
	_, err := newInputChain(context.Background(), []string{"a.md", "  "}, &logger)
	assert.EqualError(t, err, "input: empty argument")
}

func TestInputChainHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger := zerolog.Nop()
	chain, err := newInputChain(ctx, []string{srv.URL}, &logger)
	require.NoError(t, err)
	_, err = io.ReadAll(chain)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateOutputMakesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	f, err := createOutput(path)
	require.NoError(t, err)
	_, err = f.WriteString("ok")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}
