package outparse

import (
	"regexp"
	"strings"

	"github.com/chriserin/cukelive/internal/entity"
)

// StepResultEvent is the immutable result of one observed step. Text may
// still contain tag tokens the runner injected; the identity matcher strips
// those during resolution.
type StepResultEvent struct {
	Keyword string
	Text    string
	Status  entity.StepStatus
	Error   string // multi-line, empty unless the step failed
}

var (
	stepPattern     = regexp.MustCompile(`^\s*([✔✓√+✘✗✖×!↷~-]*)\s*(Given|When|Then|And|But)\s+(.+)$`)
	trailingComment = regexp.MustCompile(`\s+#.*$`)
	boundaryPattern = regexp.MustCompile(`^\s*(Feature|Background|Rule|Scenario Outline|Scenario|Examples|Example):`)
	appLogPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

	exceptionHead = regexp.MustCompile(`^\s*(?:[\w$]+\.)*[\w$]*(?:Exception|Error|Throwable)\b`)
	stackFrame    = regexp.MustCompile(`^\s*at\s+\S+\(.*\)`)
	causedBy      = regexp.MustCompile(`^\s*Caused by:`)
	elidedFrames  = regexp.MustCompile(`^\s*\.\.\. \d+ more$`)
)

// pendingStep accumulates one step between its symbol line and whatever
// triggers finalization. At most one exists at a time.
type pendingStep struct {
	keyword   string
	text      string
	status    entity.StepStatus
	errLines  []string
	capturing bool
}

// LineParser turns normalized runner output lines into step-result events,
// one Consume call per line. It is conservative: lines matching neither a
// step, an error heuristic, nor a boundary are ignored.
type LineParser struct {
	pending *pendingStep
}

func NewLineParser() *LineParser {
	return &LineParser{}
}

// Consume processes one raw line and returns zero, one, or two finalized
// events: superseding a pending step emits it, and a skipped step emits
// itself immediately since no error context can follow it.
func (p *LineParser) Consume(rawLine string) []StepResultEvent {
	line := Normalize(rawLine)

	// Interleaved application logging must never pollute step or error
	// state, even while an error capture is in progress.
	if appLogPattern.MatchString(line) {
		return nil
	}

	if m := stepPattern.FindStringSubmatch(line); m != nil {
		var events []StepResultEvent
		if ev := p.flush(); ev != nil {
			events = append(events, *ev)
		}

		status := ClassifySymbol(m[1])
		if status == entity.StatusNone {
			// Absence of a recognizable glyph never implies success.
			status = entity.StatusUndefined
		}
		text := strings.TrimSpace(trailingComment.ReplaceAllString(m[3], ""))
		p.pending = &pendingStep{keyword: m[2], text: text, status: status}

		// Skipped steps carry no error context; finalize right away.
		if status == entity.StatusSkipped {
			events = append(events, *p.flush())
		}
		return events
	}

	if p.pending != nil && p.pending.status == entity.StatusFailed && isErrorContext(line) {
		p.pending.errLines = append(p.pending.errLines, line)
		p.pending.capturing = true
		return nil
	}

	if strings.TrimSpace(line) == "" || boundaryPattern.MatchString(line) {
		if ev := p.flush(); ev != nil {
			return []StepResultEvent{*ev}
		}
		return nil
	}

	// Unrecognized line: no event, no state change.
	return nil
}

// Finalize force-flushes any pending step. It must be called when the
// stream ends so the final step is never lost to a missing boundary line.
func (p *LineParser) Finalize() *StepResultEvent {
	return p.flush()
}

// Reset clears all state without emitting an event.
func (p *LineParser) Reset() {
	p.pending = nil
}

func (p *LineParser) flush() *StepResultEvent {
	if p.pending == nil {
		return nil
	}
	ev := &StepResultEvent{
		Keyword: p.pending.keyword,
		Text:    p.pending.text,
		Status:  p.pending.status,
		Error:   strings.Join(p.pending.errLines, "\n"),
	}
	// cucumber-jvm reports unimplemented glue as a failure whose trace
	// starts with a PendingException; surface it as pending instead.
	if ev.Status == entity.StatusFailed && len(p.pending.errLines) > 0 &&
		strings.Contains(p.pending.errLines[0], "PendingException") {
		ev.Status = entity.StatusPending
	}
	p.pending = nil
	return ev
}

func isErrorContext(line string) bool {
	return exceptionHead.MatchString(line) ||
		stackFrame.MatchString(line) ||
		causedBy.MatchString(line) ||
		elidedFrames.MatchString(line)
}
