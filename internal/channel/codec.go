package channel

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Envelope types.
const (
	EnvelopeCall  = "call"
	EnvelopeReply = "reply"
)

// Reply statuses.
const (
	StatusSuccess        = "success"
	StatusError          = "error"
	StatusNotImplemented = "not_implemented"
)

// Envelope is the wire form of a call or a reply.
// ID 0 on a call means no reply is expected.
type Envelope struct {
	Type    string      `json:"type"`
	ID      int64       `json:"id,omitempty"`
	Channel string      `json:"channel,omitempty"`
	Method  string      `json:"method,omitempty"`
	Args    interface{} `json:"args"`
	Status  string      `json:"status,omitempty"`
	Result  interface{} `json:"result"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Codec encodes and decodes envelopes. Integers decode as int64 so that
// argument shapes survive a round trip.
type Codec struct {
	api sonic.API
}

// NewCodec returns the JSON envelope codec.
func NewCodec() *Codec {
	return &Codec{
		api: sonic.Config{
			UseInt64:         true,
			NoNullSliceOrMap: true,
		}.Froze(),
	}
}

// Encode serializes an envelope.
func (c *Codec) Encode(env *Envelope) ([]byte, error) {
	data, err := c.api.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s envelope: %w", env.Type, err)
	}
	return data, nil
}

// Decode parses an envelope and checks its shape.
func (c *Codec) Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := c.api.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	switch env.Type {
	case EnvelopeCall:
		if env.Channel == "" || env.Method == "" {
			return nil, fmt.Errorf("%w: call envelope needs channel and method", ErrIllegalArgument)
		}
	case EnvelopeReply:
		if env.ID == 0 {
			return nil, fmt.Errorf("%w: reply envelope needs an id", ErrIllegalArgument)
		}
		switch env.Status {
		case StatusSuccess, StatusError, StatusNotImplemented:
		default:
			return nil, fmt.Errorf("%w: unknown reply status %q", ErrIllegalArgument, env.Status)
		}
	default:
		return nil, fmt.Errorf("%w: unknown envelope type %q", ErrIllegalArgument, env.Type)
	}
	return &env, nil
}

// Deliver hands a decoded reply to result.
func (env *Envelope) Deliver(result Result) {
	switch env.Status {
	case StatusSuccess:
		result.Success(env.Result)
	case StatusError:
		result.Error(env.Code, env.Message, env.Details)
	default:
		result.NotImplemented()
	}
}

// Marshal encodes an arbitrary value with the codec settings. Engines use it
// to turn script values into JSON strings.
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	return c.api.Marshal(v)
}
