// SPDX-License-Identifier: MPL-2.0

package pipecmd

import (
	"bytes"
	"strings"
)

// tailWriter splits a stream into lines, forwards each line to the sink,
// and retains only the most recently seen line. Earlier lines are
// overwritten; multi-line diagnostics keep their last line only.
type tailWriter struct {
	op      string
	sink    Sink
	partial bytes.Buffer
	tail    string
}

func newTailWriter(op string, sink Sink) *tailWriter {
	return &tailWriter{op: op, sink: sink}
}

// Write implements io.Writer. Writes never fail.
func (w *tailWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			w.emit()
			continue
		}
		w.partial.WriteByte(b)
	}
	return len(p), nil
}

// flush emits a trailing line that was not newline-terminated. Call after
// the command has exited.
func (w *tailWriter) flush() {
	if w.partial.Len() > 0 {
		w.emit()
	}
}

// last returns the most recent complete line, with trailing carriage
// returns stripped.
func (w *tailWriter) last() string {
	return w.tail
}

func (w *tailWriter) emit() {
	line := strings.TrimSuffix(w.partial.String(), "\r")
	w.partial.Reset()
	w.tail = line
	if w.sink != nil {
		w.sink(w.op, line)
	}
}
