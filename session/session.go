// Package session implements the JSON-RPC dispatcher for one side of an LSP
// peer: typed request and notification registration, outbound-request
// correlation with future-returning results, and inbound routing of
// requests, responses and notifications.
//
// A Session is driven by one logical owner at a time: feed each inbound
// envelope body to Receive, issue outbound traffic with SendRequest and
// SendNotification. Futures are fulfilled synchronously from within a later
// Receive call, so a caller that blocks on a future from the goroutine that
// drives Receive will deadlock; run the two halves on separate goroutines
// when blocking waits are needed.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/tidwall/sjson"

	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
)

// Sender delivers one serialised message body to the peer.
type Sender func(msg string) error

// Diagnostics with stable text.
var (
	ErrNoSender       = errors.New("no sender set")
	ErrMissingResult  = errors.New("response missing 'result'")
	ErrSessionClosed  = errors.New("session closed")
	errNilResultValue = errors.New("request handler produced no result value")
)

// RequestInfo describes one request message type: its method string, an
// optional params codec, the result codec, and an optional typed-failure
// codec. Descriptor values are declared once per message type in the
// catalogue and shared by both peers.
type RequestInfo[P, R, E any] struct {
	Method string
	Params *codec.Codec[P]
	Result codec.Codec[R]
	Error  *codec.Codec[E]
}

// NotificationInfo describes one notification message type.
type NotificationInfo[P any] struct {
	Method string
	Params *codec.Codec[P]
}

// requestEntry is a registered request handler plus its post-send hook.
type requestEntry struct {
	handle func(params *json.Value, b *json.Builder) (resultJSON, errorJSON string, err error)

	mu       sync.Mutex
	postSend func()
}

func (e *requestEntry) setPostSend(cb func()) {
	e.mu.Lock()
	e.postSend = cb
	e.mu.Unlock()
}

func (e *requestEntry) firePostSend() {
	e.mu.Lock()
	cb := e.postSend
	e.mu.Unlock()
	if cb != nil {
		cb()
	}
}

type notificationEntry func(params *json.Value) error

// waiter consumes the response object for one outstanding request id.
type waiter func(root *json.Value) error

// Session is the dispatcher state: the sender callback, the per-method
// handler registries, the id-keyed waiter table and the id counter.
// Internal maps are mutex-guarded so that Receive may be driven from a
// dedicated I/O goroutine while another goroutine sends.
type Session struct {
	mu            sync.Mutex
	sender        Sender
	logger        *slog.Logger
	requests      map[string]*requestEntry
	notifications map[string]notificationEntry
	waiters       map[int64]waiter
	lastID        int64
	closed        bool
}

// New returns an empty Session. Install a sender and handlers before the
// first Receive.
func New() *Session {
	return &Session{
		requests:      make(map[string]*requestEntry),
		notifications: make(map[string]notificationEntry),
		waiters:       make(map[int64]waiter),
	}
}

// SetSender installs the outbound delivery callback. The sender may
// re-enter the peer synchronously (paired in-memory sessions do); all
// internal state is committed before it is invoked.
func (s *Session) SetSender(fn Sender) {
	s.mu.Lock()
	s.sender = fn
	s.mu.Unlock()
}

// SetLogger installs an optional wire-trace logger. Traces are emitted at
// Debug level.
func (s *Session) SetLogger(l *slog.Logger) {
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

func (s *Session) trace(msg string, args ...any) {
	s.mu.Lock()
	l := s.logger
	s.mu.Unlock()
	if l != nil {
		l.Debug(msg, args...)
	}
}

// Close abandons every outstanding waiter; their futures fail with
// ErrSessionClosed. Further sends fail the same way.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	abandoned := s.waiters
	s.waiters = make(map[int64]waiter)
	s.mu.Unlock()

	for _, w := range abandoned {
		_ = w(nil)
	}
}

// Registration is returned by HandleRequest; OnPostSend installs a callback
// invoked after the response for this method has been handed to the sender.
type Registration struct {
	entry *requestEntry
}

// OnPostSend installs cb to run strictly after the sender has returned for
// a response produced by this handler, and before Receive returns for the
// triggering request. Useful for shutdown/exit sequencing.
func (r *Registration) OnPostSend(cb func()) {
	r.entry.setPostSend(cb)
}

// HandleRequest registers fn as the handler for info's method, replacing
// any previous handler for that method.
//
// fn's error return carries the typed failure: return Reject(payload) to
// answer with an error response; any other non-nil error aborts Receive for
// the triggering message without sending a response.
func HandleRequest[P, R, E any](s *Session, info RequestInfo[P, R, E], fn func(*P) (R, error)) *Registration {
	entry := &requestEntry{}
	entry.handle = func(params *json.Value, b *json.Builder) (string, string, error) {
		var p P
		if info.Params != nil && params != nil {
			if err := info.Params.Decode(params, &p); err != nil {
				return "", "", err
			}
		}
		result, err := fn(&p)
		if err != nil {
			if info.Error != nil {
				var re *RequestError[E]
				if errors.As(err, &re) {
					ev, encErr := info.Error.Encode(b, re.Payload)
					if encErr != nil {
						return "", "", encErr
					}
					return "", ev.JSON(), nil
				}
			}
			return "", "", err
		}
		rv, err := info.Result.Encode(b, result)
		if err != nil {
			return "", "", err
		}
		if rv == nil {
			return "", "", errNilResultValue
		}
		return rv.JSON(), "", nil
	}

	s.mu.Lock()
	s.requests[info.Method] = entry
	s.mu.Unlock()
	return &Registration{entry: entry}
}

// HandleNotification registers fn as the handler for info's method,
// replacing any previous handler for that method.
func HandleNotification[P any](s *Session, info NotificationInfo[P], fn func(*P) error) {
	entry := notificationEntry(func(params *json.Value) error {
		var p P
		if info.Params != nil && params != nil {
			if err := info.Params.Decode(params, &p); err != nil {
				return err
			}
		}
		return fn(&p)
	})

	s.mu.Lock()
	s.notifications[info.Method] = entry
	s.mu.Unlock()
}

// RequestError carries a typed request failure across the session boundary
// as an error value. Handlers produce one via Reject; callers waiting on a
// future recover the payload with errors.As.
type RequestError[E any] struct {
	Payload E
}

// Error implements the error interface.
func (e *RequestError[E]) Error() string {
	return fmt.Sprintf("request failed: %+v", e.Payload)
}

// Reject wraps payload as the typed failure of a request handler.
func Reject[E any](payload E) error {
	return &RequestError[E]{Payload: payload}
}

// Receive dispatches one inbound envelope body: a request is routed to its
// handler and answered, a notification is routed to its handler, and a
// response fulfils the future of the outstanding request with its id.
func (s *Session) Receive(body string) error {
	b := json.NewBuilder()
	root, err := b.Parse(body)
	if err != nil {
		return err
	}

	if !root.Has("method") {
		return s.receiveResponse(root)
	}
	mv, err := root.Get("method")
	if err != nil {
		return err
	}
	method, err := mv.Str()
	if err != nil {
		return err
	}

	var params *json.Value
	if root.Has("params") {
		params, _ = root.Get("params")
	}

	if root.Has("id") {
		return s.receiveRequest(root, method, params, b)
	}
	return s.receiveNotification(method, params)
}

func (s *Session) receiveRequest(root *json.Value, method string, params *json.Value, b *json.Builder) error {
	idv, err := root.Get("id")
	if err != nil {
		return err
	}

	s.mu.Lock()
	entry, ok := s.requests[method]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no handler registered for request method '%s'", method)
	}

	s.trace("lsp receive request", "method", method, "id", idv.JSON())

	resultJSON, errorJSON, err := entry.handle(params, b)
	if err != nil {
		return err
	}

	// Inbound ids are echoed raw, so string ids round-trip even though this
	// peer only ever allocates integer ids.
	out, err := sjson.SetRaw("{}", "id", idv.JSON())
	if err != nil {
		return err
	}
	if errorJSON != "" {
		out, err = sjson.SetRaw(out, "error", errorJSON)
	} else {
		out, err = sjson.SetRaw(out, "result", resultJSON)
	}
	if err != nil {
		return err
	}

	if err := s.sendBody(out); err != nil {
		return err
	}
	entry.firePostSend()
	return nil
}

func (s *Session) receiveNotification(method string, params *json.Value) error {
	s.mu.Lock()
	entry, ok := s.notifications[method]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no handler registered for request method '%s'", method)
	}
	s.trace("lsp receive notification", "method", method)
	return entry(params)
}

func (s *Session) receiveResponse(root *json.Value) error {
	idv, err := root.Get("id")
	if err != nil {
		return err
	}
	id, err := idv.I64()
	if err != nil {
		return err
	}

	s.mu.Lock()
	w, ok := s.waiters[id]
	if ok {
		delete(s.waiters, id)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("received response for unknown request with ID %d", id)
	}

	s.trace("lsp receive response", "id", id)
	return w(root)
}

func (s *Session) sendBody(body string) error {
	s.mu.Lock()
	sender := s.sender
	s.mu.Unlock()
	if sender == nil {
		return ErrNoSender
	}
	return sender(body)
}

// SendRequest issues an outbound request for info with the given params and
// returns a Future for the typed response. The waiter is installed before
// the message reaches the sender, so a synchronous peer may answer from
// within the send.
func SendRequest[P, R, E any](s *Session, info RequestInfo[P, R, E], params P) (*Future[R], error) {
	fut := newFuture[R]()

	w := func(root *json.Value) error {
		if root == nil {
			fut.fail(ErrSessionClosed)
			return ErrSessionClosed
		}
		if root.Has("result") {
			rv, err := root.Get("result")
			if err != nil {
				fut.fail(err)
				return err
			}
			var r R
			if err := info.Result.Decode(rv, &r); err != nil {
				fut.fail(err)
				return err
			}
			fut.resolve(r)
			return nil
		}
		if info.Error != nil && root.Has("error") {
			ev, err := root.Get("error")
			if err != nil {
				fut.fail(err)
				return err
			}
			var e E
			if err := info.Error.Decode(ev, &e); err != nil {
				fut.fail(err)
				return err
			}
			fut.fail(&RequestError[E]{Payload: e})
			return nil
		}
		fut.fail(ErrMissingResult)
		return ErrMissingResult
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.sender == nil {
		s.mu.Unlock()
		return nil, ErrNoSender
	}
	s.lastID++
	id := s.lastID
	s.waiters[id] = w
	sender := s.sender
	s.mu.Unlock()

	body, err := requestBody(id, info.Method, encodeParams(info.Params, params))
	if err != nil {
		s.dropWaiter(id)
		return nil, err
	}

	s.trace("lsp send request", "method", info.Method, "id", id)
	if err := sender(body); err != nil {
		s.dropWaiter(id)
		return nil, err
	}
	return fut, nil
}

// SendNotification issues an outbound notification for info.
func SendNotification[P any](s *Session, info NotificationInfo[P], params P) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}

	var paramsJSON string
	var err error
	if info.Params != nil {
		paramsJSON, err = encodeParams(info.Params, params)()
		if err != nil {
			return err
		}
	}

	body := "{}"
	if body, err = sjson.Set(body, "method", info.Method); err != nil {
		return err
	}
	if info.Params != nil {
		if body, err = sjson.SetRaw(body, "params", paramsJSON); err != nil {
			return err
		}
	}

	s.trace("lsp send notification", "method", info.Method)
	return s.sendBody(body)
}

func (s *Session) dropWaiter(id int64) {
	s.mu.Lock()
	delete(s.waiters, id)
	s.mu.Unlock()
}

// encodeParams defers params encoding so callers can assemble the envelope
// in one place; a nil codec yields a nil thunk handled by requestBody.
func encodeParams[P any](c *codec.Codec[P], params P) func() (string, error) {
	if c == nil {
		return nil
	}
	return func() (string, error) {
		b := json.NewBuilder()
		pv, err := c.Encode(b, params)
		if err != nil {
			return "", err
		}
		return pv.JSON(), nil
	}
}

// requestBody assembles {"id":…,"method":…,"params":…} with members in
// canonical order.
func requestBody(id int64, method string, params func() (string, error)) (string, error) {
	body, err := sjson.SetRaw("{}", "id", strconv.FormatInt(id, 10))
	if err != nil {
		return "", err
	}
	if body, err = sjson.Set(body, "method", method); err != nil {
		return "", err
	}
	if params != nil {
		raw, err := params()
		if err != nil {
			return "", err
		}
		if body, err = sjson.SetRaw(body, "params", raw); err != nil {
			return "", err
		}
	}
	return body, nil
}
