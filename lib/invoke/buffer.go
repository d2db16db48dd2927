package invoke

import "bytes"

// boundedBuffer accumulates up to MaxCaptureBytes and silently discards the
// rest. Write never returns an error, so a chatty child process keeps
// draining its pipes instead of blocking on a full one.
type boundedBuffer struct {
	buf bytes.Buffer
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	remaining := MaxCaptureBytes - b.buf.Len()
	if remaining > 0 {
		if len(p) > remaining {
			b.buf.Write(p[:remaining])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	return b.buf.String()
}
