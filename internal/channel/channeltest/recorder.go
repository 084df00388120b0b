package channeltest

import "sync"

// Outcome of a recorded result.
const (
	OutcomePending        = ""
	OutcomeSuccess        = "success"
	OutcomeError          = "error"
	OutcomeNotImplemented = "not_implemented"
)

// Recorder is a channel.Result that remembers every answer it receives.
type Recorder struct {
	mu      sync.Mutex
	outcome string
	value   interface{}
	code    string
	message string
	answers int
}

func (r *Recorder) Success(result interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers++
	r.outcome = OutcomeSuccess
	r.value = result
}

func (r *Recorder) Error(code, message string, details interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers++
	r.outcome = OutcomeError
	r.code = code
	r.message = message
}

func (r *Recorder) NotImplemented() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers++
	r.outcome = OutcomeNotImplemented
}

// Outcome returns the last outcome, or OutcomePending.
func (r *Recorder) Outcome() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Value returns the success value.
func (r *Recorder) Value() interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Code returns the error code.
func (r *Recorder) Code() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.code
}

// Message returns the error message.
func (r *Recorder) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// Answers returns how many times the result was answered.
func (r *Recorder) Answers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.answers
}
