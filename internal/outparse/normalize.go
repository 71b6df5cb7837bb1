package outparse

import (
	"github.com/acarl005/stripansi"

	"github.com/chriserin/cukelive/internal/entity"
)

// Normalize removes ANSI escape sequences from a line. It is idempotent and
// must run before any status detection.
func Normalize(line string) string {
	return stripansi.Strip(line)
}

// Glyph variants vary across runner versions; all known variants map to one
// of three canonical statuses.
var symbolStatus = map[rune]entity.StepStatus{
	'✔': entity.StatusPassed,
	'✓': entity.StatusPassed,
	'√': entity.StatusPassed,
	'+': entity.StatusPassed,
	'✘': entity.StatusFailed,
	'✗': entity.StatusFailed,
	'✖': entity.StatusFailed,
	'×': entity.StatusFailed,
	'!': entity.StatusFailed,
	'↷': entity.StatusSkipped,
	'~': entity.StatusSkipped,
	'-': entity.StatusSkipped,
}

// ClassifySymbol maps a glyph token to its canonical status. When the token
// carries more than one recognizable glyph the priority is failed > skipped
// > passed, so a failure signal is never downgraded by trailing noise.
// Unrecognized input yields StatusNone.
func ClassifySymbol(token string) entity.StepStatus {
	best := entity.StatusNone
	for _, r := range token {
		status, ok := symbolStatus[r]
		if !ok {
			continue
		}
		if rank(status) > rank(best) {
			best = status
		}
	}
	return best
}

func rank(s entity.StepStatus) int {
	switch s {
	case entity.StatusFailed:
		return 3
	case entity.StatusSkipped:
		return 2
	case entity.StatusPassed:
		return 1
	}
	return 0
}
