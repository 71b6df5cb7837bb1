package outparse

import "bytes"

// Framer adapts arbitrary byte chunks from a process into complete lines.
// Partial lines are buffered across chunk boundaries; no line is forwarded
// twice and no partial line is forwarded. Close flushes a trailing
// unterminated line at stream end.
type Framer struct {
	sink func(line string)
	buf  []byte
}

func NewFramer(sink func(line string)) *Framer {
	return &Framer{sink: sink}
}

// Write implements io.Writer so the framer can sit directly on a command's
// stdout/stderr. Lines are forwarded synchronously, in order.
func (f *Framer) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(f.buf[:i], []byte{'\r'}))
		f.buf = append(f.buf[:0], f.buf[i+1:]...)
		f.sink(line)
	}
	return len(p), nil
}

// Close flushes any buffered partial line.
func (f *Framer) Close() error {
	if len(f.buf) > 0 {
		line := string(bytes.TrimSuffix(f.buf, []byte{'\r'}))
		f.buf = f.buf[:0]
		f.sink(line)
	}
	return nil
}
