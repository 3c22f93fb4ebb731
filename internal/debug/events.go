package debug

// SessionStartData opens a trace.
type SessionStartData struct {
	Version string `json:"version"`
	PID     int    `json:"pid"`
}

// SessionEndData closes a trace. Events counts emitted events by phase.
type SessionEndData struct {
	ElapsedMs int64          `json:"elapsed_ms"`
	Events    map[string]int `json:"events"`
}

// AssembleStartData contains information about the start of an assembly.
type AssembleStartData struct {
	Source string `json:"source"`
}

// AssembleEndData contains information about the end of an assembly.
type AssembleEndData struct {
	Lines     int   `json:"lines"`
	Glyphs    int   `json:"glyphs"`
	Errors    int   `json:"errors"`
	Warnings  int   `json:"warnings"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

// DirectiveData contains a directive statement once its operand is applied.
type DirectiveData struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Keyword string `json:"keyword"`
	Operand string `json:"operand"`
}

// GlyphData contains information about a glyph opened or closed by DRAW.
type GlyphData struct {
	Index  int `json:"index"`
	Line   int `json:"line"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"`
	Bytes  int `json:"bytes"`
}

// PixelData contains one pixel token and where it ended up.
type PixelData struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Token  string `json:"token"`
	Value  int    `json:"value"`
	Result string `json:"result"` // "placed", "clipped_x", "clipped_y"
}

// DiagnosticData contains an error or warning issued during assembly.
type DiagnosticData struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

// WriteDoneData contains information about completed write operation.
type WriteDoneData struct {
	BytesWritten int64 `json:"bytes_written"`
}
