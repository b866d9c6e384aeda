package fsm

import (
	"fmt"
	"strings"
)

// Record is one completed install of a state.
type Record struct {
	Tick uint64
	From StateID
	To   StateID
}

func (r Record) String() string {
	from := r.From
	if from == "" {
		from = "<start>"
	}
	return fmt.Sprintf("tick=%d %s -> %s", r.Tick, from, r.To)
}

// FormatHistory renders records one per line.
func FormatHistory(records []Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// history is a fixed-size ring of transition records.
type history struct {
	buf  []Record
	next int
	full bool
}

func newHistory(size int) *history {
	if size <= 0 {
		return &history{}
	}
	return &history{buf: make([]Record, size)}
}

func (h *history) add(r Record) {
	if len(h.buf) == 0 {
		return
	}
	h.buf[h.next] = r
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

func (h *history) records() []Record {
	if !h.full {
		return append([]Record(nil), h.buf[:h.next]...)
	}
	out := make([]Record, 0, len(h.buf))
	out = append(out, h.buf[h.next:]...)
	return append(out, h.buf[:h.next]...)
}
