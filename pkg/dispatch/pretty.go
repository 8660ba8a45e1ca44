package dispatch

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"
)

type eventType int

const (
	Error eventType = iota
	Start
	Ok
	Fail
	Group
	Done
)

func (et eventType) String() string {
	return [...]string{"Error", "Start", "Ok", "Fail", "Group", "Done"}[et]
}

// Reporter prints one line per dispatch event to the console.
type Reporter struct {
	mu      sync.Mutex
	out     io.Writer
	aurora  aurora.Aurora
	classes [6]aurora.Value

	// guarded by atomic.
	launched uint32
	errored  uint32

	start time.Time
}

// NewReporter constructs a reporter writing to out, in colour if color is set.
func NewReporter(out io.Writer, color bool) *Reporter {
	au := aurora.NewAurora(color)
	return &Reporter{
		out:    out,
		aurora: au,
		classes: [...]aurora.Value{
			au.BgRed("ERROR").White(),
			au.BgBrightCyan("START").Black(),
			au.BgGreen("OK").White(),
			au.BgYellow("FAIL").Black(),
			au.BgWhite("GROUP").Black(),
			au.BgBlue("DONE").White(),
		},
		start: time.Now(),
	}
}

// Started reports a launched child.
func (r *Reporter) Started(id int, path string) {
	atomic.AddUint32(&r.launched, 1)
	r.print(id, Start, "writing to ", path)
}

// Finished reports a child that exited. A non-zero exit is reported as FAIL
// but it is informational only.
func (r *Reporter) Finished(res *Result) {
	evt := Ok
	if !res.OK() {
		evt = Fail
	}
	r.print(res.ID, evt, fmt.Sprintf("exit=%d captured %s in %s",
		res.ExitCode, humanize.Bytes(uint64(res.Bytes)), res.Elapsed.Round(time.Millisecond)))
}

// Errored reports an invocation that could not be launched or waited on.
func (r *Reporter) Errored(id int, err error) {
	atomic.AddUint32(&r.errored, 1)
	r.print(id, Error, err)
}

// GroupStarted reports the start of a script group.
func (r *Reporter) GroupStarted(ids []int) {
	r.write(Group, fmt.Sprintf("Starting script group: %v", ids))
}

// GroupDone reports the end of a script group.
func (r *Reporter) GroupDone(ids []int) {
	r.write(Done, fmt.Sprintf("Script group %v done", ids))
}

// Summary prints the totals of an Execute call.
func (r *Reporter) Summary(s *Summary) {
	r.write(Done, fmt.Sprintf("run %s: %d invocations (%d launched, %d errored, %d non-zero exits) in %s",
		s.RunID, len(s.Results), atomic.LoadUint32(&r.launched), atomic.LoadUint32(&r.errored),
		s.NonZero(), s.Elapsed.Round(time.Millisecond)))
}

func (r *Reporter) print(id int, evt eventType, message ...interface{}) {
	tag := r.aurora.Index(uint8(id%15)+1, fmt.Sprintf("<< %s >>", OutputName(id)))
	r.write(evt, fmt.Sprint(tag, " ", fmt.Sprint(message...)))
}

func (r *Reporter) write(evt eventType, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%9.4fs %10s %s\n",
		time.Since(r.start).Seconds(),
		r.classes[evt],
		msg,
	)
}
