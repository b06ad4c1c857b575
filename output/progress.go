package output

import (
	"fmt"
	"io"
	"time"

	"code.cloudfoundry.org/bytefmt"
)

// ProgressMeter renders upload progress on a single terminal line, at
// most ten times per second. Its Update method has the shape of an
// exchange.ProgressFunc and always allows the transfer to continue.
type ProgressMeter struct {
	writer   io.Writer
	lastDraw time.Time
	drawn    bool
}

func NewProgressMeter(writer io.Writer) *ProgressMeter {
	return &ProgressMeter{writer: writer}
}

func (m *ProgressMeter) Update(bytesSent, totalBytes int64) bool {
	now := time.Now()
	if bytesSent < totalBytes && now.Sub(m.lastDraw) < 100*time.Millisecond {
		return true
	}
	m.lastDraw = now
	m.drawn = true

	fmt.Fprintf(m.writer, "\ruploading %s / %s",
		bytefmt.ByteSize(uint64(bytesSent)),
		bytefmt.ByteSize(uint64(totalBytes)))
	return true
}

// Finish terminates the progress line, if one was drawn.
func (m *ProgressMeter) Finish() {
	if m.drawn {
		fmt.Fprintln(m.writer)
	}
}
