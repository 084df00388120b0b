package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLateInterruptDoesNotLeakIntoNextRun(t *testing.T) {
	h := newHarness(t, nil)
	v := h.newView(newRecordingClient())

	var failures []error
	h.do(func() {
		runtime := v.runtime
		for i := 0; i < 200; i++ {
			runtime.timeout = time.Microsecond
			_, _ = runtime.run("for (var i = 0; i < 2000; i++) {}")

			runtime.timeout = 0
			if _, err := runtime.run("40 + 2"); err != nil {
				failures = append(failures, err)
			}
		}
	})
	assert.Empty(t, failures)
}
