package progress

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"

	bprogress "github.com/charmbracelet/bubbles/progress"
)

// Update is a single counter snapshot. Total is zero when unknown.
type Update struct {
	Label   string
	Current int64
	Total   int64
}

// Reporter draws the latest Update on its own goroutine. Only the newest
// pending value is kept; intermediate values may be skipped.
type Reporter struct {
	out     io.Writer
	updates chan Update
	done    chan struct{}
	bar     bprogress.Model
	once    sync.Once
}

// New starts a reporter writing to out.
func New(out io.Writer) *Reporter {
	r := &Reporter{
		out:     out,
		updates: make(chan Update, 1),
		done:    make(chan struct{}),
		bar:     bprogress.New(bprogress.WithWidth(30), bprogress.WithoutPercentage()),
	}
	go r.loop()
	return r
}

// Report publishes u, replacing any value not yet drawn. It never blocks on
// rendering. Report must not be called after Close.
func (r *Reporter) Report(u Update) {
	for {
		select {
		case r.updates <- u:
			return
		default:
		}
		select {
		case <-r.updates:
		default:
		}
	}
}

// Close stops the reporter after drawing the last pending update.
func (r *Reporter) Close() {
	r.once.Do(func() {
		close(r.updates)
		<-r.done
	})
}

func (r *Reporter) loop() {
	defer close(r.done)
	drew := false
	for u := range r.updates {
		r.draw(u)
		drew = true
	}
	if drew {
		fmt.Fprintln(r.out)
	}
}

func (r *Reporter) draw(u Update) {
	if u.Total > 0 {
		pct := float64(u.Current) / float64(u.Total)
		if pct > 1 {
			pct = 1
		}
		fmt.Fprintf(r.out, "\r%s %s %d/%d", u.Label, r.bar.ViewAs(pct), u.Current, u.Total)
		return
	}
	fmt.Fprintf(r.out, "\r%s %d", u.Label, u.Current)
}

// CountingReader wraps rd and reports the number of bytes read so far.
func (r *Reporter) CountingReader(rd io.Reader, label string, total int64) io.Reader {
	return &countingReader{r: rd, rep: r, label: label, total: total}
}

type countingReader struct {
	r     io.Reader
	rep   *Reporter
	label string
	total int64
	n     int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.n += int64(n)
		c.rep.Report(Update{Label: c.label, Current: c.n, Total: c.total})
	}
	return n, err
}

// sidebandLine matches git server progress such as
// "Receiving objects:  45% (123/273)".
var sidebandLine = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z ]*):\s+\d+%\s+\((\d+)/(\d+)\)`)

// Writer returns an io.Writer that accepts git sideband progress text and
// turns each recognised line into an Update. Other text is discarded.
func (r *Reporter) Writer() io.Writer {
	return &sidebandWriter{rep: r}
}

type sidebandWriter struct {
	rep *Reporter
	buf strings.Builder
}

func (w *sidebandWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\r' || b == '\n' {
			w.flush()
			continue
		}
		w.buf.WriteByte(b)
	}
	return len(p), nil
}

func (w *sidebandWriter) flush() {
	line := w.buf.String()
	w.buf.Reset()
	if u, ok := ParseSideband(line); ok {
		w.rep.Report(u)
	}
}

// ParseSideband extracts a counter from one line of git progress output.
func ParseSideband(line string) (Update, bool) {
	m := sidebandLine.FindStringSubmatch(line)
	if m == nil {
		return Update{}, false
	}
	cur, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Update{}, false
	}
	total, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Update{}, false
	}
	return Update{Label: strings.TrimSpace(m[1]), Current: cur, Total: total}, true
}
