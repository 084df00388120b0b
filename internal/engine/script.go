package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

// scriptRuntime is the script global scope of one document.
type scriptRuntime struct {
	vm      *goja.Runtime
	view    *View
	timeout time.Duration
}

func newScriptRuntime(view *View) *scriptRuntime {
	r := &scriptRuntime{
		vm:      goja.New(),
		view:    view,
		timeout: view.engine.settings.ScriptTimeout,
	}
	r.vm.SetMaxCallStackSize(1024)
	r.setupGlobals()
	return r
}

// run executes script, interrupting it once the timeout passes.
func (r *scriptRuntime) run(script string) (goja.Value, error) {
	var timer *time.Timer
	fired := make(chan struct{})
	if r.timeout > 0 {
		timer = time.AfterFunc(r.timeout, func() {
			r.vm.Interrupt("execution timeout exceeded")
			close(fired)
		})
	}
	value, err := r.vm.RunString(script)
	if timer != nil && !timer.Stop() {
		// The interrupt may land after RunString returned; it must not
		// outlive this run.
		<-fired
	}
	r.vm.ClearInterrupt()
	return value, err
}

// evaluate runs script and returns its result as JSON.
func (r *scriptRuntime) evaluate(script string) (string, error) {
	value, err := r.run(script)
	if err != nil {
		return "", err
	}
	return r.stringify(value)
}

func (r *scriptRuntime) stringify(value goja.Value) (string, error) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return "null", nil
	}
	stringify, ok := goja.AssertFunction(r.vm.Get("JSON").ToObject(r.vm).Get("stringify"))
	if !ok {
		return "", fmt.Errorf("JSON.stringify unavailable")
	}
	out, err := stringify(goja.Undefined(), value)
	if err != nil {
		return "", err
	}
	if goja.IsUndefined(out) {
		return "null", nil
	}
	return out.String(), nil
}

func (r *scriptRuntime) interrupt() {
	r.vm.Interrupt("view destroyed")
}

func (r *scriptRuntime) bindChannel(name string, channel webview.ScriptChannel) {
	obj := r.vm.NewObject()
	_ = obj.Set("postMessage", func(call goja.FunctionCall) goja.Value {
		channel.PostMessage(call.Argument(0).String())
		return goja.Undefined()
	})
	_ = r.vm.Set(name, obj)
}

func (r *scriptRuntime) unbind(name string) {
	_ = r.vm.GlobalObject().Delete(name)
}

func (r *scriptRuntime) setupGlobals() {
	vm := r.vm
	global := vm.GlobalObject()

	_ = vm.Set("require", goja.Undefined())
	_ = vm.Set("process", goja.Undefined())
	_ = vm.Set("module", goja.Undefined())
	_ = vm.Set("exports", goja.Undefined())

	_ = vm.Set("window", global)
	_ = vm.Set("self", global)

	console := vm.NewObject()
	for level, zl := range map[string]zapcore.Level{
		"log":   zapcore.DebugLevel,
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		_ = console.Set(level, r.makeConsoleFunc(level, zl))
	}
	_ = vm.Set("console", console)

	// Timers never fire in a headless document.
	noTimer := func(goja.FunctionCall) goja.Value { return vm.ToValue(0) }
	_ = vm.Set("setTimeout", noTimer)
	_ = vm.Set("setInterval", noTimer)
	_ = vm.Set("clearTimeout", func(goja.FunctionCall) goja.Value { return goja.Undefined() })
	_ = vm.Set("clearInterval", func(goja.FunctionCall) goja.Value { return goja.Undefined() })

	r.setupDocument()
	r.setupLocation()
	r.setupScrolling()
	r.setupWindowOpen()
	if r.view.settings.domStorage {
		r.setupLocalStorage()
	}
}

func (r *scriptRuntime) makeConsoleFunc(name string, level zapcore.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		if r.view.debugging && level < zapcore.InfoLevel {
			level = zapcore.InfoLevel
		}
		if ce := r.view.logger.Check(level, "console."+name); ce != nil {
			ce.Write(zap.String("message", strings.Join(parts, " ")), zap.String("url", r.view.URL()))
		}
		return goja.Undefined()
	}
}

func (r *scriptRuntime) accessor(obj *goja.Object, name string, get func() interface{}, set func(goja.Value)) {
	getter := r.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(get())
	})
	var setter goja.Value
	if set != nil {
		setter = r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			set(call.Argument(0))
			return goja.Undefined()
		})
	}
	_ = obj.DefineAccessorProperty(name, getter, setter, goja.FLAG_TRUE, goja.FLAG_TRUE)
}

func (r *scriptRuntime) setupDocument() {
	view := r.view
	document := r.vm.NewObject()
	r.accessor(document, "title",
		func() interface{} { return view.Title() },
		func(v goja.Value) { view.setTitle(v.String()) })
	r.accessor(document, "URL", func() interface{} { return view.URL() }, nil)
	_ = r.vm.Set("document", document)
}

func (r *scriptRuntime) setupLocation() {
	view := r.view
	location := r.vm.NewObject()
	r.accessor(location, "href",
		func() interface{} { return view.URL() },
		func(v goja.Value) { view.navigateFromScript(v.String()) })
	r.accessor(location, "origin", func() interface{} { return originOf(view.URL()) }, nil)
	r.accessor(location, "host", func() interface{} { return hostOf(view.URL()) }, nil)
	_ = location.Set("assign", func(call goja.FunctionCall) goja.Value {
		view.navigateFromScript(call.Argument(0).String())
		return goja.Undefined()
	})
	_ = location.Set("replace", func(call goja.FunctionCall) goja.Value {
		view.navigateFromScript(call.Argument(0).String())
		return goja.Undefined()
	})
	_ = location.Set("reload", func(goja.FunctionCall) goja.Value {
		view.Reload()
		return goja.Undefined()
	})
	_ = location.Set("toString", func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(view.URL())
	})
	_ = r.vm.Set("location", location)
}

func (r *scriptRuntime) setupScrolling() {
	view := r.view
	global := r.vm.GlobalObject()
	_ = global.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		view.ScrollTo(int(call.Argument(0).ToInteger()), int(call.Argument(1).ToInteger()))
		return goja.Undefined()
	})
	_ = global.Set("scrollBy", func(call goja.FunctionCall) goja.Value {
		view.ScrollBy(int(call.Argument(0).ToInteger()), int(call.Argument(1).ToInteger()))
		return goja.Undefined()
	})
	r.accessor(global, "scrollX", func() interface{} { return view.ScrollX() }, nil)
	r.accessor(global, "scrollY", func() interface{} { return view.ScrollY() }, nil)
}

func (r *scriptRuntime) setupWindowOpen() {
	view := r.view
	_ = r.vm.Set("open", func(call goja.FunctionCall) goja.Value {
		target := call.Argument(0)
		if goja.IsUndefined(target) || goja.IsNull(target) {
			return goja.Null()
		}
		view.openWindow(target.String(), false)
		return goja.Null()
	})
}

func (r *scriptRuntime) setupLocalStorage() {
	storage := r.view.engine.storage
	origin := func() string { return originOf(r.view.URL()) }

	local := r.vm.NewObject()
	_ = local.Set("getItem", func(call goja.FunctionCall) goja.Value {
		v, ok := storage.Get(origin(), call.Argument(0).String())
		if !ok {
			return goja.Null()
		}
		return r.vm.ToValue(v)
	})
	_ = local.Set("setItem", func(call goja.FunctionCall) goja.Value {
		storage.Set(origin(), call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})
	_ = local.Set("removeItem", func(call goja.FunctionCall) goja.Value {
		storage.Remove(origin(), call.Argument(0).String())
		return goja.Undefined()
	})
	_ = local.Set("clear", func(goja.FunctionCall) goja.Value {
		storage.Clear(origin())
		return goja.Undefined()
	})
	r.accessor(local, "length", func() interface{} { return storage.Len(origin()) }, nil)
	_ = r.vm.Set("localStorage", local)
}
