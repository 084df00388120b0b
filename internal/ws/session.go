package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/engine"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/looper"
	"github.com/GriffinCanCode/AgentOS/webview/internal/platformview"
)

const (
	maxMessageBytes = 1 << 20
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Session is one connection and the views created over it. It implements
// channel.Messenger for the views it owns.
type Session struct {
	id      uuid.UUID
	conn    *websocket.Conn
	codec   *channel.Codec
	loop    *looper.Looper
	engine  *engine.Engine
	factory *platformview.Factory
	logger  *zap.Logger
	metrics *monitoring.Metrics
	created time.Time

	writeMu sync.Mutex

	mu       sync.Mutex
	handlers map[string]channel.Handler
	pending  map[int64]channel.Result
	nextID   int64

	stopped chan struct{}
}

func (h *Handler) newSession(conn *websocket.Conn) *Session {
	id := uuid.New()
	logger := h.logger.With(zap.String("session_id", id.String()))
	loop := looper.New()

	s := &Session{
		id:       id,
		conn:     conn,
		codec:    h.codec,
		loop:     loop,
		logger:   logger,
		metrics:  h.metrics,
		created:  time.Now(),
		handlers: make(map[string]channel.Handler),
		pending:  make(map[int64]channel.Result),
		stopped:  make(chan struct{}),
	}
	s.engine = engine.New(engine.Config{
		Settings: h.settings,
		Poster:   loop,
		Fetcher:  h.fetcher,
		Logger:   logger,
		Metrics:  h.metrics,
	})
	s.factory = platformview.NewFactory(platformview.Config{
		Engine:    s.engine,
		Messenger: s,
		Poster:    loop,
		Logger:    logger,
		Metrics:   h.metrics,
	}, h.defaults)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id.String()
}

// Send writes an outbound call. When reply is non-nil the call gets an id
// and reply receives the client's answer.
func (s *Session) Send(name string, call channel.MethodCall, reply channel.Result) {
	env := &channel.Envelope{
		Type:    channel.EnvelopeCall,
		Channel: name,
		Method:  call.Method,
		Args:    call.Arguments,
	}
	if reply != nil {
		s.mu.Lock()
		s.nextID++
		env.ID = s.nextID
		s.pending[env.ID] = reply
		s.mu.Unlock()
	}

	if err := s.write(env); err != nil {
		s.logger.Warn("failed to send call",
			zap.String("channel", name),
			zap.String("method", call.Method),
			zap.Error(err),
		)
		if reply != nil {
			s.mu.Lock()
			delete(s.pending, env.ID)
			s.mu.Unlock()
			channel.Fail(reply, err)
		}
	}
}

// SetMessageHandler routes inbound calls on name to handler.
func (s *Session) SetMessageHandler(name string, handler channel.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if handler == nil {
		delete(s.handlers, name)
		return
	}
	s.handlers[name] = handler
}

// run serves the connection until the client goes away or ctx ends.
func (s *Session) run(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer close(s.stopped)
		_ = s.loop.Run(loopCtx)
	}()
	s.loop.Post(s.factory.Bind)

	go func() {
		<-loopCtx.Done()
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageBytes)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		env, err := s.codec.Decode(data)
		if err != nil {
			s.record("in", "invalid")
			s.logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		s.record("in", env.Type)
		s.loop.Post(func() { s.dispatch(env) })
	}

	s.shutdown()
}

// dispatch runs on the looper.
func (s *Session) dispatch(env *channel.Envelope) {
	switch env.Type {
	case channel.EnvelopeCall:
		s.mu.Lock()
		handler := s.handlers[env.Channel]
		s.mu.Unlock()

		reply := &reply{session: s, id: env.ID, channel: env.Channel}
		if handler == nil {
			reply.NotImplemented()
			return
		}
		handler.OnMethodCall(channel.MethodCall{Method: env.Method, Arguments: env.Args}, reply)

	case channel.EnvelopeReply:
		s.mu.Lock()
		result, ok := s.pending[env.ID]
		delete(s.pending, env.ID)
		s.mu.Unlock()

		if !ok {
			s.logger.Warn("reply for unknown call", zap.Int64("id", env.ID))
			return
		}
		env.Deliver(result)
	}
}

// shutdown disposes every view on the looper, then stops it.
func (s *Session) shutdown() {
	disposed := make(chan struct{})
	s.loop.Post(func() {
		s.factory.DisposeAll()
		close(disposed)
	})

	select {
	case <-disposed:
	case <-s.stopped:
		// The looper is gone, so nothing else touches the views.
		s.factory.DisposeAll()
	case <-time.After(shutdownTimeout):
		s.logger.Warn("timed out disposing views")
	}

	s.loop.Quit()
	<-s.stopped
	s.engine.Close()
	_ = s.conn.Close()
}

// describe reads view state on the looper.
func (s *Session) describe(ctx context.Context) (SessionInfo, error) {
	info := SessionInfo{ID: s.ID(), Connected: s.created}
	views := make(chan []platformview.ViewInfo, 1)
	s.loop.Post(func() { views <- s.factory.Describe() })

	select {
	case info.Views = <-views:
		return info, nil
	case <-s.stopped:
		return info, looper.ErrQuit
	case <-ctx.Done():
		return info, ctx.Err()
	}
}

func (s *Session) write(env *channel.Envelope) error {
	data, err := s.codec.Encode(env)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	s.record("out", env.Type)
	return nil
}

func (s *Session) record(direction, msgType string) {
	if s.metrics != nil {
		s.metrics.RecordWSMessage(direction, msgType)
	}
}

// reply answers one inbound call. Only the first answer is sent, and
// nothing is sent for calls with id 0.
type reply struct {
	session  *Session
	id       int64
	channel  string
	answered bool
}

func (r *reply) Success(result interface{}) {
	r.send(&channel.Envelope{Status: channel.StatusSuccess, Result: result})
}

func (r *reply) Error(code, message string, details interface{}) {
	r.send(&channel.Envelope{Status: channel.StatusError, Code: code, Message: message, Details: details})
}

func (r *reply) NotImplemented() {
	r.send(&channel.Envelope{Status: channel.StatusNotImplemented})
}

func (r *reply) send(env *channel.Envelope) {
	if r.answered {
		r.session.logger.Warn("call answered twice", zap.String("channel", r.channel), zap.Int64("id", r.id))
		return
	}
	r.answered = true
	if r.id == 0 {
		return
	}

	env.Type = channel.EnvelopeReply
	env.ID = r.id
	env.Channel = r.channel
	if err := r.session.write(env); err != nil {
		r.session.logger.Warn("failed to send reply", zap.Int64("id", r.id), zap.Error(err))
	}
}
