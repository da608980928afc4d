// Package directive turns line-oriented commands into calls on an admission
// session and formats the engine's results as output lines.
package directive

import (
	"strings"
)

// Verb names a directive.
type Verb string

const (
	VerbAddSeat Verb = "addseat"
	VerbEnqueue Verb = "enqueue"
	VerbSell    Verb = "sell"
	VerbClose   Verb = "close"
	VerbReport  Verb = "report"
	VerbInfo    Verb = "info"
)

// Directive is one tokenized input line.
type Directive struct {
	Verb Verb
	Args []string
}

// Arg returns the i-th argument or "" when absent.
func (d Directive) Arg(i int) string {
	if i < len(d.Args) {
		return d.Args[i]
	}
	return ""
}

// Parse splits a line on runs of spaces. The second result is false for
// lines with no tokens.
func Parse(line string) (Directive, bool) {
	tokens := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' })
	if len(tokens) == 0 {
		return Directive{}, false
	}
	return Directive{Verb: Verb(tokens[0]), Args: tokens[1:]}, true
}
