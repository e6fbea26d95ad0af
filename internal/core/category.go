package core

import "strings"

// KeywordRule maps a lowercase keyword to a category label. Rules are
// matched by substring containment in table order, so overlapping
// keywords resolve to whichever rule was configured first.
type KeywordRule struct {
	Keyword string
	Label   string
}

// Classifier resolves an expense category from message text against an
// injected keyword table. The table and fallback label are
// configuration; the classifier never mutates them.
type Classifier struct {
	rules    []KeywordRule
	fallback string
}

func NewClassifier(rules []KeywordRule, fallback string) *Classifier {
	return &Classifier{rules: rules, fallback: fallback}
}

// Classify returns the label of the first keyword contained in the
// message, or the fallback label when nothing matches. Never empty.
func (c *Classifier) Classify(text string) string {
	msg := strings.ToLower(text)
	for _, rule := range c.rules {
		if strings.Contains(msg, rule.Keyword) {
			return rule.Label
		}
	}
	return c.fallback
}

// Fallback returns the configured default label.
func (c *Classifier) Fallback() string {
	return c.fallback
}
