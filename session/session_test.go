package session_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/protocol"
	"github.com/lspwire/lspwire/session"
)

const initializeParamsJSON = `{"processId":71875,"clientInfo":{"name":"My Awesome Editor","version":"1.2.3"},"locale":"en-gb","rootPath":"/home/bob/src/langsvr","rootUri":"file:///home/bob/src/langsvr","capabilities":{"workspace":{"applyEdit":true,"configuration":true,"workspaceFolders":true},"window":{"workDoneProgress":true}},"trace":"off","workspaceFolders":[{"uri":"file:///home/bob/src/langsvr","name":"langsvr"}]}`

// pair wires two sessions as each other's peer.
func pair() (client, server *session.Session) {
	client = session.New()
	server = session.New()
	client.SetSender(func(msg string) error { return server.Receive(msg) })
	server.SetSender(func(msg string) error { return client.Receive(msg) })
	return client, server
}

func testInitializeParams() protocol.InitializeParams {
	var p protocol.InitializeParams
	p.ProcessID.SetA(71875)
	p.Locale = codec.Some("en-gb")
	p.RootURI.SetA(protocol.DocumentURI("file:///home/bob/src/langsvr"))
	return p
}

func hoverTrueResult() protocol.InitializeResult {
	var hover codec.OneOf2[bool, protocol.HoverOptions]
	hover.SetA(true)
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{HoverProvider: codec.Some(hover)},
	}
}

func TestReceiveInitializeRequest(t *testing.T) {
	server := session.New()

	handlerCalled := false
	session.HandleRequest(server, protocol.InitializeInfo,
		func(p *protocol.InitializeParams) (protocol.InitializeResult, error) {
			handlerCalled = true
			if p.ProcessID.A() == nil || *p.ProcessID.A() != 71875 {
				t.Errorf("processId = %+v", p.ProcessID)
			}
			if locale, ok := p.Locale.Get(); !ok || locale != "en-gb" {
				t.Errorf("locale = %q, %v", locale, ok)
			}
			if rootPath, ok := p.RootPath.Get(); !ok || rootPath.A() == nil || *rootPath.A() != "/home/bob/src/langsvr" {
				t.Errorf("rootPath = %+v", p.RootPath)
			}
			if ci, ok := p.ClientInfo.Get(); !ok || ci.Name != "My Awesome Editor" {
				t.Errorf("clientInfo = %+v", p.ClientInfo)
			} else if ver, ok := ci.Version.Get(); !ok || ver != "1.2.3" {
				t.Errorf("clientInfo.version = %q, %v", ver, ok)
			}
			return hoverTrueResult(), nil
		})

	var responses []string
	server.SetSender(func(msg string) error {
		responses = append(responses, msg)
		return nil
	})

	body := `{"jsonrpc":"2.0","id":10,"method":"initialize","params":` + initializeParamsJSON + `}`
	if err := server.Receive(body); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	want := `{"id":10,"result":{"capabilities":{"hoverProvider":true}}}`
	if len(responses) != 1 || responses[0] != want {
		t.Errorf("responses = %v, want [%s]", responses, want)
	}
}

func TestPairedSessionsResult(t *testing.T) {
	client, server := pair()

	sent := testInitializeParams()
	handlerCalled := false
	session.HandleRequest(server, protocol.InitializeInfo,
		func(p *protocol.InitializeParams) (protocol.InitializeResult, error) {
			handlerCalled = true
			if locale, ok := p.Locale.Get(); !ok || locale != "en-gb" {
				t.Errorf("locale = %q, %v", locale, ok)
			}
			return hoverTrueResult(), nil
		})

	fut, err := session.SendRequest(client, protocol.InitializeInfo, sent)
	if err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if !fut.Ready() {
		t.Fatal("future not fulfilled by synchronous peer")
	}

	res, err := fut.Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	hover, ok := res.Capabilities.HoverProvider.Get()
	if !ok || hover.A() == nil || !*hover.A() {
		t.Errorf("hoverProvider = %+v, %v", hover, ok)
	}
}

func TestPairedSessionsTypedFailure(t *testing.T) {
	client, server := pair()

	session.HandleRequest(server, protocol.InitializeInfo,
		func(*protocol.InitializeParams) (protocol.InitializeResult, error) {
			return protocol.InitializeResult{}, session.Reject(protocol.InitializeError{Retry: true})
		})

	fut, err := session.SendRequest(client, protocol.InitializeInfo, testInitializeParams())
	if err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}

	_, err = fut.Wait()
	if err == nil {
		t.Fatal("future resolved without error")
	}
	var re *session.RequestError[protocol.InitializeError]
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want a typed InitializeError", err)
	}
	if !re.Payload.Retry {
		t.Errorf("payload = %+v, want retry", re.Payload)
	}
}

func TestSendRequestWireFormat(t *testing.T) {
	client := session.New()
	var bodies []string
	client.SetSender(func(msg string) error {
		bodies = append(bodies, msg)
		return nil
	})

	if _, err := session.SendRequest(client, protocol.InitializeInfo, testInitializeParams()); err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}
	if len(bodies) != 1 {
		t.Fatalf("bodies = %v", bodies)
	}
	if !strings.HasPrefix(bodies[0], `{"id":1,"method":"initialize","params":{`) {
		t.Errorf("request body = %q", bodies[0])
	}
}

func TestRequestIDsMonotonic(t *testing.T) {
	client := session.New()
	var bodies []string
	client.SetSender(func(msg string) error {
		bodies = append(bodies, msg)
		return nil
	})

	for i := 0; i < 3; i++ {
		if _, err := session.SendRequest(client, protocol.ShutdownInfo, codec.Null{}); err != nil {
			t.Fatalf("SendRequest() error = %v", err)
		}
	}
	for i, body := range bodies {
		want := fmt.Sprintf(`{"id":%d,"method":"shutdown"}`, i+1)
		if body != want {
			t.Errorf("request %d = %q, want %q", i, body, want)
		}
	}
}

func TestShutdownNullResult(t *testing.T) {
	client := session.New()
	client.SetSender(func(string) error { return nil })

	fut, err := session.SendRequest(client, protocol.ShutdownInfo, codec.Null{})
	if err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}
	if err := client.Receive(`{"id":1,"result":null}`); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if _, err := fut.Wait(); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestResponseMissingResult(t *testing.T) {
	client := session.New()
	client.SetSender(func(string) error { return nil })

	fut, err := session.SendRequest(client, protocol.ShutdownInfo, codec.Null{})
	if err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}
	// Shutdown declares no failure type, so a result-less response is a
	// hard failure.
	err = client.Receive(`{"id":1,"error":{"code":-32603,"message":"broken"}}`)
	if err == nil || err.Error() != "response missing 'result'" {
		t.Errorf("Receive() error = %v", err)
	}
	if _, err := fut.Wait(); err == nil || err.Error() != "response missing 'result'" {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestUnknownRequestMethod(t *testing.T) {
	server := session.New()
	server.SetSender(func(string) error { return nil })

	err := server.Receive(`{"id":1,"method":"does/notExist"}`)
	if err == nil || err.Error() != "no handler registered for request method 'does/notExist'" {
		t.Errorf("Receive() error = %v", err)
	}
}

func TestUnknownResponseID(t *testing.T) {
	client := session.New()
	client.SetSender(func(string) error { return nil })

	err := client.Receive(`{"id":99,"result":{}}`)
	if err == nil || err.Error() != "received response for unknown request with ID 99" {
		t.Errorf("Receive() error = %v", err)
	}
}

func TestHandlerReplacement(t *testing.T) {
	server := session.New()
	server.SetSender(func(string) error { return nil })

	var calls []string
	session.HandleRequest(server, protocol.ShutdownInfo, func(*codec.Null) (codec.Null, error) {
		calls = append(calls, "first")
		return codec.Null{}, nil
	})
	session.HandleRequest(server, protocol.ShutdownInfo, func(*codec.Null) (codec.Null, error) {
		calls = append(calls, "second")
		return codec.Null{}, nil
	})

	if err := server.Receive(`{"id":1,"method":"shutdown"}`); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, want [second]", calls)
	}
}

func TestPostSendOrdering(t *testing.T) {
	server := session.New()

	var events []string
	server.SetSender(func(msg string) error {
		events = append(events, "sender")
		return nil
	})
	reg := session.HandleRequest(server, protocol.ShutdownInfo, func(*codec.Null) (codec.Null, error) {
		events = append(events, "handler")
		return codec.Null{}, nil
	})
	reg.OnPostSend(func() {
		events = append(events, "post-send")
	})

	if err := server.Receive(`{"id":1,"method":"shutdown"}`); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	want := []string{"handler", "sender", "post-send"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestNotifications(t *testing.T) {
	client, server := pair()

	var opened []string
	session.HandleNotification(server, protocol.TextDocumentDidOpenInfo,
		func(p *protocol.DidOpenTextDocumentParams) error {
			opened = append(opened, string(p.TextDocument.URI))
			return nil
		})

	for _, uri := range []string{"file:///a.go", "file:///b.go"} {
		err := session.SendNotification(client, protocol.TextDocumentDidOpenInfo,
			protocol.DidOpenTextDocumentParams{
				TextDocument: protocol.TextDocumentItem{
					URI:        protocol.DocumentURI(uri),
					LanguageID: "go",
					Version:    1,
					Text:       "package main",
				},
			})
		if err != nil {
			t.Fatalf("SendNotification(%s) error = %v", uri, err)
		}
	}

	// Dispatch order matches send order.
	if len(opened) != 2 || opened[0] != "file:///a.go" || opened[1] != "file:///b.go" {
		t.Errorf("opened = %v", opened)
	}
}

func TestNotificationWireFormat(t *testing.T) {
	client := session.New()
	var bodies []string
	client.SetSender(func(msg string) error {
		bodies = append(bodies, msg)
		return nil
	})

	if err := session.SendNotification(client, protocol.InitializedInfo, protocol.InitializedParams{}); err != nil {
		t.Fatalf("SendNotification(initialized) error = %v", err)
	}
	if err := session.SendNotification(client, protocol.ExitInfo, codec.Null{}); err != nil {
		t.Fatalf("SendNotification(exit) error = %v", err)
	}

	if bodies[0] != `{"method":"initialized","params":{}}` {
		t.Errorf("initialized body = %q", bodies[0])
	}
	if bodies[1] != `{"method":"exit"}` {
		t.Errorf("exit body = %q", bodies[1])
	}
}

func TestUnknownNotification(t *testing.T) {
	server := session.New()
	err := server.Receive(`{"method":"$/unknown"}`)
	if err == nil || err.Error() != "no handler registered for request method '$/unknown'" {
		t.Errorf("Receive() error = %v", err)
	}
}

func TestNoSender(t *testing.T) {
	client := session.New()
	_, err := session.SendRequest(client, protocol.ShutdownInfo, codec.Null{})
	if err == nil || err.Error() != "no sender set" {
		t.Errorf("SendRequest() error = %v", err)
	}
}

func TestCloseAbandonsWaiters(t *testing.T) {
	client := session.New()
	client.SetSender(func(string) error { return nil })

	fut, err := session.SendRequest(client, protocol.ShutdownInfo, codec.Null{})
	if err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}
	client.Close()

	if _, err := fut.Wait(); !errors.Is(err, session.ErrSessionClosed) {
		t.Errorf("Wait() error = %v, want session closed", err)
	}
	if _, err := session.SendRequest(client, protocol.ShutdownInfo, codec.Null{}); !errors.Is(err, session.ErrSessionClosed) {
		t.Errorf("SendRequest() after close = %v", err)
	}
}

func TestHandlerErrorAbortsWithoutResponse(t *testing.T) {
	server := session.New()
	var sent []string
	server.SetSender(func(msg string) error {
		sent = append(sent, msg)
		return nil
	})

	boom := errors.New("boom")
	session.HandleRequest(server, protocol.ShutdownInfo, func(*codec.Null) (codec.Null, error) {
		return codec.Null{}, boom
	})

	if err := server.Receive(`{"id":1,"method":"shutdown"}`); !errors.Is(err, boom) {
		t.Errorf("Receive() error = %v", err)
	}
	if len(sent) != 0 {
		t.Errorf("a response was sent: %v", sent)
	}
}

func TestStringRequestIDEchoed(t *testing.T) {
	server := session.New()
	var sent []string
	server.SetSender(func(msg string) error {
		sent = append(sent, msg)
		return nil
	})
	session.HandleRequest(server, protocol.ShutdownInfo, func(*codec.Null) (codec.Null, error) {
		return codec.Null{}, nil
	})

	if err := server.Receive(`{"id":"abc-1","method":"shutdown"}`); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if len(sent) != 1 || sent[0] != `{"id":"abc-1","result":null}` {
		t.Errorf("sent = %v", sent)
	}
}

func TestRequestResponseSequence(t *testing.T) {
	client, server := pair()

	session.HandleRequest(server, protocol.InitializeInfo,
		func(*protocol.InitializeParams) (protocol.InitializeResult, error) {
			return hoverTrueResult(), nil
		})
	var shutdownSeen bool
	session.HandleRequest(server, protocol.ShutdownInfo, func(*codec.Null) (codec.Null, error) {
		shutdownSeen = true
		return codec.Null{}, nil
	})

	first, err := session.SendRequest(client, protocol.InitializeInfo, testInitializeParams())
	if err != nil {
		t.Fatalf("SendRequest(initialize) error = %v", err)
	}
	second, err := session.SendRequest(client, protocol.ShutdownInfo, codec.Null{})
	if err != nil {
		t.Fatalf("SendRequest(shutdown) error = %v", err)
	}

	if _, err := first.Wait(); err != nil {
		t.Errorf("initialize future error = %v", err)
	}
	if _, err := second.Wait(); err != nil {
		t.Errorf("shutdown future error = %v", err)
	}
	if !shutdownSeen {
		t.Error("shutdown handler was not called")
	}
}
