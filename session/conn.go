package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/lspwire/lspwire/frame"
)

// Conn binds a Session to a byte stream: outbound bodies are written as
// Content-Length envelopes on w, and Serve pumps inbound envelopes from r
// into Session.Receive. The stream is typically a child process's stdio or
// a socket; Conn itself is transport-agnostic.
type Conn struct {
	sess   *Session
	r      io.Reader
	w      io.Writer
	wmu    sync.Mutex
	logger *slog.Logger
}

// NewConn wires sess to the given stream and installs the framed sender.
func NewConn(sess *Session, r io.Reader, w io.Writer) *Conn {
	c := &Conn{sess: sess, r: r, w: w}
	sess.SetSender(func(msg string) error {
		c.wmu.Lock()
		defer c.wmu.Unlock()
		return frame.WriteContent(c.w, msg)
	})
	return c
}

// SetLogger installs a logger for per-envelope dispatch failures.
func (c *Conn) SetLogger(l *slog.Logger) { c.logger = l }

// Serve reads envelopes until the stream ends or ctx is cancelled, feeding
// each body to the session. A dispatch failure is logged and the loop
// continues; a framing failure ends the loop and is returned. Returns nil
// when ReadContent reports EOF, which covers a stream that ends between
// envelopes and also one that ends part-way through an envelope.
//
// Reads block in the underlying Reader, so cancellation takes effect at
// envelope boundaries unless the reader itself honours ctx.
func (c *Conn) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		body, err := frame.ReadContent(c.r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.sess.Receive(body); err != nil {
			if c.logger != nil {
				c.logger.Debug("lsp dispatch failed", "error", err)
			}
		}
	}
}
