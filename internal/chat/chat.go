package chat

import (
	"fmt"
	"strings"
)

// Link is an optional call-to-action appended below a canned response.
type Link struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Rule maps a set of lowercase trigger substrings to a canned response.
// Rules are scanned in table order and the first match wins, so earlier
// rules deliberately take priority over later ones.
type Rule struct {
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`
	Links    []Link   `json:"links,omitempty"`
}

// Reply is the outcome of matching one user message against the rule table.
type Reply struct {
	Text    string
	Matched bool
}

// Responder answers free-text messages from a fixed, ordered rule table.
// It holds no conversational state; the transcript belongs to the caller.
type Responder struct {
	rules []Rule
}

// NewResponder builds a responder over rules. The slice is used as-is and
// must not be mutated afterwards.
func NewResponder(rules []Rule) *Responder {
	return &Responder{rules: rules}
}

// Reply returns the canned response for input. The input is lower-cased and
// trimmed; a rule matches when any of its keywords is a substring of the
// result. Substring matching is intentional ("hi" fires inside "this") — it
// is the authored behaviour of the widget. Unmatched input falls through to
// a fixed fallback that echoes the original text verbatim.
func (r *Responder) Reply(input string) Reply {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle != "" {
		for _, rule := range r.rules {
			for _, kw := range rule.Keywords {
				if kw == "" {
					continue
				}
				if strings.Contains(needle, kw) {
					return Reply{Text: render(rule), Matched: true}
				}
			}
		}
	}
	return Reply{Text: fallback(input), Matched: false}
}

// Rules exposes the table for introspection (admin/debug endpoints).
func (r *Responder) Rules() []Rule { return r.rules }

func render(rule Rule) string {
	if len(rule.Links) == 0 {
		return rule.Response
	}
	var b strings.Builder
	b.WriteString(rule.Response)
	b.WriteString("\n\n")
	for i, l := range rule.Links {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", l.Label, l.Target)
	}
	return b.String()
}

func fallback(input string) string {
	return fmt.Sprintf(
		"I'm not sure I understood %q. I can help with our services, case studies, careers, or how to get in touch — which of those would you like to hear about?",
		input,
	)
}
