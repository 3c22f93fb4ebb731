// Package debug traces the assembly pass: directives applied, glyphs opened
// and closed, pixels placed or dropped, and every diagnostic.
//
// MFASM_DEBUG=1 or --debug turns tracing on. Every call on a nil *Session is
// a no-op, so callers pass sessions around without checking. Events are
// JSON Lines by default; MFASM_DEBUG_PRETTY=1 selects the pretty format.
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

// TraceVersion is bumped whenever an event payload changes shape.
const TraceVersion = "1"

var enabled atomic.Bool

// SetEnabled turns tracing on or off for the whole process.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	return enabled.Load()
}

// InitFromEnv enables tracing when MFASM_DEBUG=1.
func InitFromEnv() {
	if os.Getenv("MFASM_DEBUG") == "1" {
		SetEnabled(true)
	}
}

// PrettyFromEnv reports whether MFASM_DEBUG_PRETTY=1 is set.
func PrettyFromEnv() bool {
	return os.Getenv("MFASM_DEBUG_PRETTY") == "1"
}

// Session is the trace of one assembly. It is not safe for concurrent use.
type Session struct {
	id      string
	sink    Sink
	started time.Time
	counts  map[string]int
	err     error
}

// NewSession starts a session on sink. It returns nil when tracing is off or
// sink is nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		id:      generateSessionID(),
		sink:    sink,
		started: time.Now(),
		counts:  make(map[string]int),
	}
	s.Emit("session", "Start", SessionStartData{Version: TraceVersion, PID: os.Getpid()})
	return s
}

// SessionID returns the session identifier, or "" for a nil session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Count returns how many events of phase have been emitted.
func (s *Session) Count(phase string) int {
	if s == nil {
		return 0
	}
	return s.counts[phase]
}

// Emit writes one event. The first sink error is kept and returned by Close;
// later events are still attempted.
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}
	s.counts[phase]++

	err := s.sink.Write(Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		SessionID: s.id,
		Phase:     phase,
		Event:     event,
		Data:      data,
	})
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Close emits the session end event with per-phase totals and closes the
// sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	totals := make(map[string]int, len(s.counts))
	for phase, n := range s.counts {
		if phase != "session" {
			totals[phase] = n
		}
	}
	s.Emit("session", "End", SessionEndData{
		ElapsedMs: time.Since(s.started).Milliseconds(),
		Events:    totals,
	})

	if err := s.sink.Close(); err != nil && s.err == nil {
		s.err = err
	}
	return s.err
}

func generateSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		id := strconv.FormatUint(uint64(time.Now().UnixNano())&0xffffffff, 16)
		for len(id) < 8 {
			id = "0" + id
		}
		return id
	}
	return hex.EncodeToString(b)
}

// Event is the envelope every trace line shares.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}
