package parse

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// WhenInterpreter implements DateInterpreter with the olebedev/when
// natural-language parser (English rules only). It is the lone
// non-deterministic date path and stays behind the interface so everything
// else is testable without it.
type WhenInterpreter struct {
	w *when.Parser
}

func NewWhenInterpreter() *WhenInterpreter {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &WhenInterpreter{w: w}
}

func (i *WhenInterpreter) Interpret(text string, base time.Time) (time.Time, bool) {
	r, err := i.w.Parse(text, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}

	return r.Time, true
}
