package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadRules reads a rule table from a JSON file. Keywords are lower-cased and
// trimmed on load so Reply can compare without re-normalising per message.
// Rules with no usable keywords or an empty response are rejected — a rule
// that can never fire (or fires into nothing) is a content bug worth failing
// loudly on at startup.
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chat rules: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse chat rules %s: %w", path, err)
	}
	for i := range rules {
		kept := rules[i].Keywords[:0]
		for _, kw := range rules[i].Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kept = append(kept, kw)
			}
		}
		rules[i].Keywords = kept
		if len(rules[i].Keywords) == 0 {
			return nil, fmt.Errorf("chat rule %d has no keywords", i)
		}
		if strings.TrimSpace(rules[i].Response) == "" {
			return nil, fmt.Errorf("chat rule %d has an empty response", i)
		}
	}
	return rules, nil
}

// DefaultRules is the built-in table used when no rules file is configured.
// Order matters: greetings sit first so "hi, what do you charge" greets
// instead of quoting, matching the scripted widget on the site.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keywords: []string{"hello", "hi", "hey"},
			Response: "Hello! Welcome to The Trust Group. How can I help you today?",
		},
		{
			Keywords: []string{"service", "offer", "consult"},
			Response: "We offer strategy, digital transformation, and operations consulting for mid-market and enterprise clients.",
			Links:    []Link{{Label: "Our services", Target: "/services"}},
		},
		{
			Keywords: []string{"price", "cost", "rate", "charge"},
			Response: "Engagements are scoped individually. Share a short brief with us and we'll come back with a proposal within two business days.",
			Links:    []Link{{Label: "Start a brief", Target: "/contact"}},
		},
		{
			Keywords: []string{"career", "job", "hiring", "work for", "join"},
			Response: "We're always looking for sharp consultants and engineers. Our open roles are listed on the careers page.",
			Links:    []Link{{Label: "Open roles", Target: "/careers"}},
		},
		{
			Keywords: []string{"case stud", "portfolio", "client", "past work"},
			Response: "You can browse a selection of recent engagements on our work page.",
			Links:    []Link{{Label: "Our work", Target: "/work"}},
		},
		{
			Keywords: []string{"contact", "email", "phone", "reach", "talk to"},
			Response: "The quickest way to reach the team is the contact form — a partner will reply within one business day.",
			Links: []Link{
				{Label: "Contact form", Target: "/contact"},
				{Label: "Email", Target: "hello@thetrustgroup.com"},
			},
		},
		{
			Keywords: []string{"thank", "thanks", "cheers"},
			Response: "You're welcome! Anything else I can help with?",
		},
	}
}
