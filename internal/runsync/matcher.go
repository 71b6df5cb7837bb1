package runsync

import (
	"regexp"
	"strings"

	"github.com/chriserin/cukelive/internal/entity"
	"github.com/chriserin/cukelive/internal/outparse"
)

// Tag tokens are contiguous alphanumeric runs in brackets, with optional
// surrounding whitespace, e.g. "[TAG123] Given a user".
var tagToken = regexp.MustCompile(`\s*\[[A-Za-z0-9]+\]\s*`)

// Resolve maps a step-result event to a known step entity: exact text match
// first, then a tag-stripped fuzzy retry. Returns nil when neither pass
// finds a candidate.
func Resolve(ev outparse.StepResultEvent, steps []*entity.Node) *entity.Node {
	want := ev.Keyword + " " + ev.Text
	for _, s := range steps {
		if s.Keyword+" "+s.Text == want {
			return s
		}
	}

	cleaned := stripTags(want)
	for _, s := range steps {
		if stripTags(s.Keyword+" "+s.Text) == cleaned {
			return s
		}
	}
	return nil
}

func stripTags(s string) string {
	return strings.Join(strings.Fields(tagToken.ReplaceAllString(s, " ")), " ")
}
