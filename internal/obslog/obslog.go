// Package obslog wires Hollow's diagnostic logging through klog, the
// structured logger used elsewhere in this retrieval pack's Kubernetes
// tooling. It is a thin convention layer: component name prefixing plus
// a couple of level helpers, rather than a replacement logging API. No
// other package in this module calls it.
package obslog

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Logger tags every message with a component name, the way a larger
// service distinguishes its subsystems in a shared log stream.
type Logger struct {
	component string
}

// New returns a Logger for component.
func New(component string) *Logger {
	return &Logger{component: component}
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	klog.InfoDepth(1, l.prefix()+sprintf(format, args...))
}

// Errorf logs an error-level message. It does not itself construct or
// wrap an error value; callers still return their own errors normally.
func (l *Logger) Errorf(format string, args ...interface{}) {
	klog.ErrorDepth(1, l.prefix()+sprintf(format, args...))
}

// V reports whether verbosity level v is enabled, letting call sites
// skip building an expensive message when it would be discarded.
func (l *Logger) V(level int) bool {
	return bool(klog.V(klog.Level(level)).Enabled())
}

func (l *Logger) prefix() string {
	return "[" + l.component + "] "
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
