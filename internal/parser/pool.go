package parser

import (
	"bufio"
	"io"
	"sync"
)

const (
	lineBufferSize    = 16 * 1024
	maxLineBufferSize = 1024 * 1024
)

// linePool holds scanner buffers so that assembling many sources, as the
// golden tests and the assembly cache do, does not allocate one per pass.
// Buffers that grew past maxLineBufferSize are dropped instead of pooled.
var linePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, lineBufferSize)
		return &buf
	},
}

func acquireLineBuffer() []byte {
	bufPtr, ok := linePool.Get().(*[]byte)
	if !ok {
		return make([]byte, 0, lineBufferSize)
	}
	return (*bufPtr)[:0]
}

func releaseLineBuffer(buf []byte) {
	if buf == nil || cap(buf) < lineBufferSize/2 || cap(buf) > maxLineBufferSize {
		return
	}
	buf = buf[:0]
	linePool.Put(&buf)
}

// newLineScanner returns a line scanner over r backed by a pooled buffer.
// The buffer must be released once scanning is done.
func newLineScanner(r io.Reader) (*bufio.Scanner, []byte) {
	scanner := bufio.NewScanner(r)
	buf := acquireLineBuffer()
	scanner.Buffer(buf, maxLineBufferSize)
	return scanner, buf
}
