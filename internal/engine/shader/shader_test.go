package shader

import (
	"strings"
	"testing"
	"unsafe"
)

func fakeLog(t *testing.T, text string, released *bool) func(*uint8) {
	return func(buf *uint8) {
		if *released {
			t.Error("info log read after the object was released")
		}
		dst := unsafe.Slice(buf, len(text)+1)
		copy(dst, text)
		dst[len(text)] = 0
	}
}

func TestFailureReadsLogBeforeRelease(t *testing.T) {
	released := false
	text := "error: undeclared identifier"
	err := failure("link", int32(len(text)+1), fakeLog(t, text, &released), func() { released = true })

	if !released {
		t.Error("object was not released")
	}
	if got, want := err.Error(), "link: "+text; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestFailureWithoutLog(t *testing.T) {
	released := false
	err := failure("vertex shader", 0, func(*uint8) { t.Error("read with empty log") }, func() { released = true })
	if !released {
		t.Error("object was not released")
	}
	if !strings.Contains(err.Error(), "no log") {
		t.Errorf("error = %q, want it to mention the missing log", err)
	}
}
