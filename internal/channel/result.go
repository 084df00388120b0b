package channel

// Result receives the single answer to a method call.
type Result interface {
	Success(result interface{})
	Error(code, message string, details interface{})
	NotImplemented()
}

// ResultFuncs adapts plain functions to Result. Nil fields are ignored.
type ResultFuncs struct {
	OnSuccess        func(result interface{})
	OnError          func(code, message string, details interface{})
	OnNotImplemented func()
}

func (r ResultFuncs) Success(result interface{}) {
	if r.OnSuccess != nil {
		r.OnSuccess(result)
	}
}

func (r ResultFuncs) Error(code, message string, details interface{}) {
	if r.OnError != nil {
		r.OnError(code, message, details)
	}
}

func (r ResultFuncs) NotImplemented() {
	if r.OnNotImplemented != nil {
		r.OnNotImplemented()
	}
}

// Fail reports err on result using the code CodeFor assigns to it.
func Fail(result Result, err error) {
	result.Error(CodeFor(err), err.Error(), nil)
}
