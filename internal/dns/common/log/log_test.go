package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	level  string
	msg    string
	fields map[string]any
}

type testLogger struct {
	entries []entry
}

func (l *testLogger) add(level string, f map[string]any, msg string) {
	l.entries = append(l.entries, entry{level: level, msg: msg, fields: f})
}

func (l *testLogger) Info(f map[string]any, msg string)  { l.add("INFO", f, msg) }
func (l *testLogger) Error(f map[string]any, msg string) { l.add("ERROR", f, msg) }
func (l *testLogger) Debug(f map[string]any, msg string) { l.add("DEBUG", f, msg) }
func (l *testLogger) Warn(f map[string]any, msg string)  { l.add("WARN", f, msg) }
func (l *testLogger) Panic(f map[string]any, msg string) { l.add("PANIC", f, msg) }
func (l *testLogger) Fatal(f map[string]any, msg string) { l.add("FATAL", f, msg) }

func TestActualZapLogger(t *testing.T) {
	Debug(map[string]any{
		"key1": "value1",
		"key2": 42,
		"key3": true,
	}, "test debug")
	Info(nil, "test info")
	Warn(nil, "test warn")
	Error(nil, "test error")

	assert.Panics(t, func() {
		Panic(nil, "test panic")
	})
}

func TestSetLoggerAndGlobalLogging(t *testing.T) {
	orig := GetLogger()
	defer SetLogger(orig)
	tlog := &testLogger{}
	SetLogger(tlog)

	Info(nil, "info msg")
	Error(nil, "error msg")
	Debug(nil, "debug msg")
	Warn(nil, "warn msg")

	require.Len(t, tlog.entries, 4)
	want := []string{"INFO:info msg", "ERROR:error msg", "DEBUG:debug msg", "WARN:warn msg"}
	for i, e := range tlog.entries {
		assert.Equal(t, want[i], e.level+":"+e.msg)
	}
}

func TestConfigure(t *testing.T) {
	orig := GetLogger()
	defer SetLogger(orig)

	assert.NoError(t, Configure("dev", "debug"))
	assert.NoError(t, Configure("prod", "INFO"))
	assert.Error(t, Configure("dev", "notalevel"))
}

func TestWithComponent(t *testing.T) {
	tlog := &testLogger{}
	l := WithComponent(tlog, "wire")

	l.Debug(map[string]any{"id": 7}, "built query")
	l.Warn(nil, "odd")

	require.Len(t, tlog.entries, 2)
	assert.Equal(t, map[string]any{"id": 7, "component": "wire"}, tlog.entries[0].fields)
	assert.Equal(t, map[string]any{"component": "wire"}, tlog.entries[1].fields)
	assert.Equal(t, "WARN", tlog.entries[1].level)
}

func TestWithComponent_NilLogger(t *testing.T) {
	l := WithComponent(nil, "x")
	assert.NotNil(t, l)
	l.Info(nil, "discarded")
}

func TestNoopLogger_AllLevels(t *testing.T) {
	l := NewNoopLogger()
	l.Debug(nil, "debug message")
	l.Info(nil, "info message")
	l.Warn(nil, "warn message")
	l.Error(nil, "error message")
	l.Panic(nil, "panic message")
	l.Fatal(nil, "fatal message")
}
