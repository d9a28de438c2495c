// ABOUTME: Stream lifecycle controller: single active stream, dispatch, cancellation
// ABOUTME: Idle -> Connecting -> Streaming -> {Completed|Cancelled|Failed} -> Idle

package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/dialogstream-go/internal/eventbus"
	"github.com/mauromedda/dialogstream-go/internal/log"
	"github.com/mauromedda/dialogstream-go/pkg/dialog/internal/sse"
)

// State is the lifecycle state of the controller's current (or last) stream.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateStreaming
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateChange is published on the controller's bus at every transition.
type StateChange struct {
	State State
}

const (
	readBufferSize = 4096
	stopTimeout    = 5 * time.Second
)

// streamHandle tracks one in-flight stream. At most one handle is active on
// a controller at any instant. done is closed when the stream's goroutine
// has fully wound down and will never touch the surface again.
type streamHandle struct {
	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}
}

// Controller drives a single in-flight stream at a time, dispatching parsed
// events to the surface in arrival order and implementing cooperative
// cancellation. Starting a new stream deactivates the previous one first.
type Controller struct {
	client  *Client
	session *Session
	surface Surface
	router  *Router
	bus     *eventbus.Bus[StateChange]

	// OnHistory, when set, receives the result of the post-stream history
	// refresh. The refresh itself is best-effort.
	OnHistory func([]HistoryEntry)

	mu     sync.Mutex
	active *streamHandle
	state  atomic.Int32
}

// NewController wires a controller to its client, session, and surface.
func NewController(client *Client, session *Session, surface Surface) *Controller {
	return &Controller{
		client:  client,
		session: session,
		surface: surface,
		router:  NewRouter(surface),
		bus:     eventbus.New[StateChange](),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// OnStateChange registers a handler for lifecycle transitions and returns an
// unsubscribe function.
func (c *Controller) OnStateChange(h func(StateChange)) func() {
	return c.bus.Subscribe(h)
}

// Start submits userText and consumes the streamed response until a terminal
// state is reached. It blocks for the stream's lifetime; run it on its own
// goroutine and use Cancel from elsewhere.
//
// Any stream already active is deactivated first: it is cancelled and its
// goroutine is waited out before the new stream touches the sinks, so writes
// from two streams can never interleave. Cleanup (history refresh,
// affordance reset) runs on every terminal path.
func (c *Controller) Start(ctx context.Context, userText string, params SamplingParams) error {
	sctx, cancel := context.WithCancel(ctx)
	h := &streamHandle{cancel: cancel, done: make(chan struct{})}

	c.mu.Lock()
	prev := c.active
	c.active = h
	c.mu.Unlock()

	if prev != nil {
		// Signal the old stream, then wait for its goroutine to wind down
		// before touching the sinks: its last dispatch may still be in
		// flight. The wait is short; cancellation fails its read promptly.
		prev.cancelled.Store(true)
		prev.cancel()
		<-prev.done
		log.Debug("deactivated previous stream before starting a new one")
	}

	defer c.finish(h)

	c.setState(h, StateConnecting)

	if !c.session.Initialized() {
		if err := c.session.Initialize(sctx); err != nil {
			c.fail(h, err.Error())
			return err
		}
	}

	c.surface.Clear(SinkReason)
	c.surface.Clear(SinkAnswer)
	c.surface.SetControls(false, true)
	c.surface.SetStatus("connecting")

	resp, err := c.client.openStream(sctx, chatRequest{
		RuntimeID:   c.session.RuntimeID(),
		DialogID:    c.session.DialogID(),
		UserText:    userText,
		Temperature: params.Temperature,
		TopP:        params.TopP,
	})
	if err != nil {
		if h.cancelled.Load() {
			c.setState(h, StateCancelled)
			return nil
		}
		c.fail(h, fmt.Sprintf("stream request failed: %v", err))
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.fail(h, "stream request failed: "+statusText(resp.StatusCode))
		return &TransportError{Status: resp.StatusCode}
	}

	c.setState(h, StateStreaming)
	c.surface.SetStatus("streaming")

	return c.consume(h, resp.Body)
}

// consume pulls chunks from the response body, feeds the parser, and routes
// each event in arrival order. A done event marks completion but draining
// continues until end of body, since the server may still be flushing.
func (c *Controller) consume(h *streamHandle, body io.Reader) error {
	parser := sse.New()
	buf := make([]byte, readBufferSize)
	completed := false

	for {
		n, err := body.Read(buf)
		if n > 0 {
			if c.dispatch(h, parser.Feed(buf[:n])) && !completed {
				completed = true
				c.setState(h, StateCompleted)
			}
		}
		if errors.Is(err, io.EOF) {
			c.dispatch(h, parser.Finish())
			if !completed {
				c.setState(h, StateCompleted)
			}
			return nil
		}
		if err != nil {
			if h.cancelled.Load() {
				c.setState(h, StateCancelled)
				return nil
			}
			c.fail(h, fmt.Sprintf("stream read error: %v", err))
			return &TransportError{Err: err}
		}
	}
}

// dispatch routes parsed events in arrival order, skipping them once the
// handle has been supplanted so two streams can never interleave sink
// writes. It reports whether a done event was routed.
func (c *Controller) dispatch(h *streamHandle, events []sse.Event) bool {
	done := false
	for _, ev := range events {
		if !c.isActive(h) {
			return done
		}
		if c.router.Route(Event{Kind: ev.Kind, Payload: ev.Data}) {
			done = true
		}
	}
	return done
}

// Cancel signals the in-flight stream to abort and fires a best-effort stop
// notification to the backend. With no active stream it is a no-op.
func (c *Controller) Cancel() {
	c.mu.Lock()
	h := c.active
	c.mu.Unlock()
	if h == nil {
		return
	}

	h.cancelled.Store(true)
	h.cancel()

	// Fire and proceed: the UI loop calls Cancel directly, so the stop
	// notification must never hold up the caller. It gets its own deadline
	// since the stream context is already cancelled.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := c.client.stop(ctx, c.session.RuntimeID(), c.session.DialogID()); err != nil {
			log.Debug("stop notification failed: %v", err)
		}
	}()
}

// Warmup fetches the card list and, once initialized, the history in
// parallel for initial display. Both fetches are best-effort; failures
// degrade to empty results.
func (c *Controller) Warmup(ctx context.Context) ([]Card, []HistoryEntry) {
	var (
		cards   []Card
		history []HistoryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cs, err := c.client.Cards(gctx)
		if err != nil {
			log.Debug("warmup card fetch failed: %v", err)
			return nil
		}
		cards = cs
		return nil
	})
	g.Go(func() error {
		if !c.session.Initialized() {
			return nil
		}
		hs, err := c.client.History(gctx, c.session.RuntimeID(), c.session.DialogID())
		if err != nil {
			log.Debug("warmup history fetch failed: %v", err)
			return nil
		}
		history = hs
		return nil
	})
	_ = g.Wait()

	return cards, history
}

// fail records a Failed transition with a status-described error.
func (c *Controller) fail(h *streamHandle, status string) {
	if c.isActive(h) {
		c.surface.SetStatus(status)
	}
	c.setState(h, StateFailed)
}

// finish is the guaranteed-cleanup block shared by all terminal paths:
// history refresh, affordance reset, and handle deactivation. A supplanted
// handle skips the cleanup (the new stream owns the surface by then) but
// still closes done so a waiting Start can proceed.
func (c *Controller) finish(h *streamHandle) {
	defer close(h.done)
	h.cancel()

	c.mu.Lock()
	if c.active != h {
		c.mu.Unlock()
		return
	}
	c.active = nil
	c.mu.Unlock()

	c.refreshHistory()
	c.surface.SetControls(true, false)

	final := c.State()
	c.state.Store(int32(StateIdle))
	log.Debug("stream finished in state %s", final)
}

// refreshHistory attempts the post-stream history refresh, tolerating
// failure silently.
func (c *Controller) refreshHistory() {
	if c.OnHistory == nil || !c.session.Initialized() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	entries, err := c.client.History(ctx, c.session.RuntimeID(), c.session.DialogID())
	if err != nil {
		log.Debug("post-stream history refresh failed: %v", err)
		return
	}
	c.OnHistory(entries)
}

// setState transitions the shared state and publishes the change, unless the
// handle has been supplanted by a newer stream.
func (c *Controller) setState(h *streamHandle, s State) {
	if !c.isActive(h) {
		return
	}
	c.state.Store(int32(s))
	c.bus.Publish(StateChange{State: s})
}

// isActive reports whether h is still the controller's active handle.
func (c *Controller) isActive(h *streamHandle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active == h
}

// statusText renders an HTTP status code as a short human-readable string.
func statusText(code int) string {
	if t := http.StatusText(code); t != "" {
		return fmt.Sprintf("%d %s", code, t)
	}
	return fmt.Sprintf("%d", code)
}
