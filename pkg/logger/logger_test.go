package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorded struct {
	level   string
	message string
	keyvals []any
}

type recorder struct {
	entries []recorded
}

func (r *recorder) add(level, message string, keyvals []any) {
	r.entries = append(r.entries, recorded{level: level, message: message, keyvals: keyvals})
}

func (r *recorder) Log(m string, kv ...any)   { r.add("log", m, kv) }
func (r *recorder) Debug(m string, kv ...any) { r.add("debug", m, kv) }
func (r *recorder) Info(m string, kv ...any)  { r.add("info", m, kv) }
func (r *recorder) Warn(m string, kv ...any)  { r.add("warn", m, kv) }
func (r *recorder) Error(m string, kv ...any) { r.add("error", m, kv) }
func (r *recorder) Fatal(m string, kv ...any) { r.add("fatal", m, kv) }

func TestDispatchToAllInstances(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Init(a, b)
	t.Cleanup(func() { singleton.Store(nil) })

	Info("[Graph] Built", "nodes", 3)
	Log("plain", "k", "v")
	Warn("careful")

	for _, r := range []*recorder{a, b} {
		assert.Equal(t, []recorded{
			{level: "info", message: "[Graph] Built", keyvals: []any{"nodes", 3}},
			{level: "log", message: "plain", keyvals: []any{"k", "v"}},
			{level: "warn", message: "careful", keyvals: nil},
		}, r.entries)
	}
}

func TestCallsBeforeInitAreDropped(t *testing.T) {
	singleton.Store(nil)
	assert.NotPanics(t, func() {
		Info("nobody listening")
		Error("still nobody")
	})
}
