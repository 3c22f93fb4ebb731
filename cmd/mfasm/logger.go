package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// diagFormatter prints one tab-separated line per entry: level tag,
// position and message. Diagnostics carry their position in the line and
// column fields; other entries print "-".
type diagFormatter struct {
	source string
}

func (f *diagFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := bytes.Buffer{}
	switch {
	case entry.Level <= logrus.ErrorLevel:
		buf.WriteString("ERR")
	case entry.Level == logrus.WarnLevel:
		buf.WriteString("WARN")
	case entry.Level == logrus.InfoLevel:
		buf.WriteString("INFO")
	default:
		buf.WriteString("DEBUG")
	}
	buf.WriteString("\t")

	line, hasLine := entry.Data["line"]
	column, hasColumn := entry.Data["column"]
	switch {
	case hasLine && hasColumn:
		fmt.Fprintf(&buf, "%s:%v:%v", f.source, line, column)
	case hasLine:
		fmt.Fprintf(&buf, "%s:%v", f.source, line)
	default:
		buf.WriteString("-")
	}
	buf.WriteString("\t")

	buf.WriteString(entry.Message)
	if kind, ok := entry.Data["kind"]; ok {
		fmt.Fprintf(&buf, " [%v]", kind)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// newLogger returns a logger writing to w. Quiet keeps errors only; verbose
// adds every applied directive.
func newLogger(w io.Writer, source string, quiet, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&diagFormatter{source: source})
	switch {
	case quiet:
		logger.SetLevel(logrus.ErrorLevel)
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
