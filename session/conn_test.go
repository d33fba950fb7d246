package session_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/frame"
	"github.com/lspwire/lspwire/protocol"
	"github.com/lspwire/lspwire/session"
)

func envelope(t *testing.T, body string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := frame.WriteContent(&buf, body); err != nil {
		t.Fatalf("WriteContent() error = %v", err)
	}
	return buf.String()
}

func TestConnServeDispatchesInOrder(t *testing.T) {
	sess := session.New()

	var opened []string
	session.HandleNotification(sess, protocol.TextDocumentDidOpenInfo,
		func(p *protocol.DidOpenTextDocumentParams) error {
			opened = append(opened, string(p.TextDocument.URI))
			return nil
		})

	input := envelope(t, `{"method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///a.go","languageId":"go","version":1,"text":""}}}`) +
		envelope(t, `{"method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///b.go","languageId":"go","version":1,"text":""}}}`)

	var out bytes.Buffer
	conn := session.NewConn(sess, strings.NewReader(input), &out)
	if err := conn.Serve(context.Background()); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}

	if len(opened) != 2 || opened[0] != "file:///a.go" || opened[1] != "file:///b.go" {
		t.Errorf("opened = %v", opened)
	}
}

func TestConnServeAnswersRequests(t *testing.T) {
	sess := session.New()
	session.HandleRequest(sess, protocol.ShutdownInfo, func(*codec.Null) (codec.Null, error) {
		return codec.Null{}, nil
	})

	input := envelope(t, `{"id":7,"method":"shutdown"}`)
	var out bytes.Buffer
	conn := session.NewConn(sess, strings.NewReader(input), &out)
	if err := conn.Serve(context.Background()); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}

	body, err := frame.ReadContent(&out)
	if err != nil {
		t.Fatalf("ReadContent() error = %v", err)
	}
	if body != `{"id":7,"result":null}` {
		t.Errorf("response body = %q", body)
	}
}

func TestConnServeContinuesAfterDispatchError(t *testing.T) {
	sess := session.New()

	var seen []string
	session.HandleNotification(sess, protocol.ExitInfo, func(*codec.Null) error {
		seen = append(seen, "exit")
		return nil
	})

	// The first envelope routes to no handler; the loop must carry on.
	input := envelope(t, `{"method":"$/unknown"}`) + envelope(t, `{"method":"exit"}`)
	var out bytes.Buffer
	conn := session.NewConn(sess, strings.NewReader(input), &out)
	if err := conn.Serve(context.Background()); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if len(seen) != 1 || seen[0] != "exit" {
		t.Errorf("seen = %v", seen)
	}
}

func TestConnServeCancelled(t *testing.T) {
	sess := session.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn := session.NewConn(sess, strings.NewReader(""), &bytes.Buffer{})
	if err := conn.Serve(ctx); err != context.Canceled {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}
