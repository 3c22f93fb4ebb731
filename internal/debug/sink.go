package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Sink receives the events of a session. Close is called once, by
// Session.Close.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes one JSON object per event.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events for a human reading a terminal.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write prints a header line "<session> <time> phase/event" followed by
// indented payload fields.
func (s *PrettySink) Write(event Event) error {
	fmt.Fprintf(s.w, "%s %s %s/%s\n", event.SessionID, clock(event.Timestamp), event.Phase, event.Event)

	switch d := event.Data.(type) {
	case SessionStartData:
		fmt.Fprintf(s.w, "  trace version: %s, pid: %d\n", d.Version, d.PID)
	case SessionEndData:
		s.writeSessionEnd(d)
	case AssembleStartData:
		fmt.Fprintf(s.w, "  source: %s\n", d.Source)
	case AssembleEndData:
		s.writeAssembleEnd(d)
	case DirectiveData:
		fmt.Fprintf(s.w, "  %d:%d %s %s\n", d.Line, d.Column, d.Keyword, d.Operand)
	case GlyphData:
		s.writeGlyph(d)
	case PixelData:
		s.writePixel(d)
	case DiagnosticData:
		s.writeDiagnostic(d)
	case WriteDoneData:
		fmt.Fprintf(s.w, "  bytes_written: %d\n", d.BytesWritten)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeAssembleEnd(d AssembleEndData) {
	fmt.Fprintf(s.w, "  lines: %d, glyphs: %d\n", d.Lines, d.Glyphs)
	fmt.Fprintf(s.w, "  errors: %d, warnings: %d, elapsed_ms: %d\n", d.Errors, d.Warnings, d.ElapsedMs)
}

func (s *PrettySink) writeGlyph(d GlyphData) {
	fmt.Fprintf(s.w, "  index: %d, line: %d\n", d.Index, d.Line)
	fmt.Fprintf(s.w, "  size: %dx%d @ %d bpp (%d bytes)\n", d.Width, d.Height, d.Depth, d.Bytes)
}

func (s *PrettySink) writePixel(d PixelData) {
	fmt.Fprintf(s.w, "  %d:%d token %q -> %s\n", d.Line, d.Column, d.Token, sampleStr(d.Value))
	fmt.Fprintf(s.w, "  cursor: (%d, %d) %s\n", d.X, d.Y, d.Result)
}

func (s *PrettySink) writeDiagnostic(d DiagnosticData) {
	if d.Kind != "" {
		fmt.Fprintf(s.w, "  %s at %d:%d [%s]: %s\n", d.Severity, d.Line, d.Column, d.Kind, d.Message)
		return
	}
	fmt.Fprintf(s.w, "  %s at %d:%d: %s\n", d.Severity, d.Line, d.Column, d.Message)
}

func (s *PrettySink) writeSessionEnd(d SessionEndData) {
	fmt.Fprintf(s.w, "  elapsed_ms: %d\n", d.ElapsedMs)
	phases := make([]string, 0, len(d.Events))
	for phase := range d.Events {
		phases = append(phases, phase)
	}
	sort.Strings(phases)
	for _, phase := range phases {
		fmt.Fprintf(s.w, "  %s events: %d\n", phase, d.Events[phase])
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// clock trims an RFC 3339 timestamp to its time of day.
func clock(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05.000")
}

// sampleStr formats a sample value as decimal and hex: 171 (0xAB).
func sampleStr(v int) string {
	return fmt.Sprintf("%d (0x%02X)", v, v)
}
