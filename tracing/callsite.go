package tracing

import (
	"fmt"
	"runtime"
	"strings"
)

const maxCallSiteDepth = 32

// Frames belonging to dispatch machinery are not call sites.
var dispatchPrefixes = []string{
	"reflect.",
	"runtime.",
	"github.com/jonwraymond/peekaboo/class.",
}

// callSite describes the first frame above the wrapper that is not
// dispatch machinery, as "file:line:in `func'".
//
//go:noinline
func callSite() string {
	pcs := make([]uintptr, maxCallSiteDepth)
	// Skip runtime.Callers, callSite and the wrapper closure.
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !dispatchFrame(frame.Function) {
			return fmt.Sprintf("%s:%d:in `%s'", frame.File, frame.Line, shortFuncName(frame.Function))
		}
		if !more {
			break
		}
	}
	return "(unknown):0:in `(unknown)'"
}

func dispatchFrame(function string) bool {
	for _, prefix := range dispatchPrefixes {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}

// shortFuncName strips the import path and package name:
// "example.com/app/server.(*Server).Run" becomes "(*Server).Run".
func shortFuncName(function string) string {
	if i := strings.LastIndex(function, "/"); i >= 0 {
		function = function[i+1:]
	}
	if i := strings.Index(function, "."); i >= 0 {
		function = function[i+1:]
	}
	return function
}
