package channel

// Handler answers inbound method calls.
type Handler interface {
	OnMethodCall(call MethodCall, result Result)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(call MethodCall, result Result)

func (f HandlerFunc) OnMethodCall(call MethodCall, result Result) {
	f(call, result)
}

// Messenger moves method calls between the two sides of a channel.
type Messenger interface {
	// Send delivers an outbound call. reply may be nil for fire-and-forget.
	Send(channel string, call MethodCall, reply Result)
	// SetMessageHandler installs the handler for inbound calls on channel.
	// A nil handler removes the current one.
	SetMessageHandler(channel string, handler Handler)
}

// MethodChannel is a named channel bound to a Messenger.
type MethodChannel struct {
	name      string
	messenger Messenger
}

// NewMethodChannel creates a channel called name on messenger.
func NewMethodChannel(messenger Messenger, name string) *MethodChannel {
	return &MethodChannel{name: name, messenger: messenger}
}

// Name returns the channel name.
func (c *MethodChannel) Name() string {
	return c.name
}

// SetMethodCallHandler installs or, with nil, removes the inbound handler.
func (c *MethodChannel) SetMethodCallHandler(handler Handler) {
	c.messenger.SetMessageHandler(c.name, handler)
}

// InvokeMethod sends an outbound call. reply may be nil.
func (c *MethodChannel) InvokeMethod(method string, arguments interface{}, reply Result) {
	c.messenger.Send(c.name, MethodCall{Method: method, Arguments: arguments}, reply)
}
