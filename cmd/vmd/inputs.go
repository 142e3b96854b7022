package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pkt.systems/vmd"
)

// inputChain reads files and URLs back to back. Each source is opened when
// the one before it is exhausted, so a slow URL late in the list does not
// hold up rendering of the earlier ones.
type inputChain struct {
	ctx     context.Context
	client  *http.Client
	logger  *zerolog.Logger
	pending []string

	current io.ReadCloser
	name    string
}

func newInputChain(ctx context.Context, names []string, logger *zerolog.Logger) (*inputChain, error) {
	pending := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.New("input: empty argument")
		}
		pending = append(pending, name)
	}
	return &inputChain{
		ctx:     ctx,
		client:  http.DefaultClient,
		logger:  logger,
		pending: pending,
	}, nil
}

func (c *inputChain) Read(p []byte) (int, error) {
	for {
		if c.current == nil {
			if len(c.pending) == 0 {
				return 0, io.EOF
			}
			if err := c.advance(); err != nil {
				return 0, err
			}
		}
		n, err := c.current.Read(p)
		if errors.Is(err, io.EOF) {
			if cerr := c.closeCurrent(); cerr != nil {
				return n, cerr
			}
			if n == 0 {
				continue
			}
			err = nil
		} else if err != nil {
			err = fmt.Errorf("input %s: %w", c.name, err)
		}
		return n, err
	}
}

// Close releases the source being read. Sources not reached yet were never
// opened.
func (c *inputChain) Close() error {
	c.pending = nil
	return c.closeCurrent()
}

func (c *inputChain) advance() error {
	name := c.pending[0]
	c.pending = c.pending[1:]
	rc, err := c.open(name)
	if err != nil {
		return fmt.Errorf("input %s: %w", name, err)
	}
	c.logger.Debug().Str("input", name).Msg("reading input")
	c.current, c.name = rc, name
	return nil
}

func (c *inputChain) closeCurrent() error {
	if c.current == nil {
		return nil
	}
	err := c.current.Close()
	c.current = nil
	if err != nil {
		return fmt.Errorf("input %s: %w", c.name, err)
	}
	return nil
}

func (c *inputChain) open(name string) (io.ReadCloser, error) {
	if u, err := url.Parse(name); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return c.fetch(name)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Opaque
			}
			return os.Open(path)
		}
	}
	return os.Open(vmd.ExpandHome(name))
}

func (c *inputChain) fetch(rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	c.logger.Debug().Str("url", rawURL).Int64("length", resp.ContentLength).Msg("fetched")
	return resp.Body, nil
}

// createOutput opens path for writing, creating missing parent directories.
func createOutput(path string) (*os.File, error) {
	path = vmd.ExpandHome(strings.TrimSpace(path))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("output %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", path, err)
	}
	return f, nil
}
