package sector

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/hulondalo/warta/internal/logger"
)

// Classifier maps free text to a sector code using keyword matching over an
// Aho-Corasick automaton. One pass collects every keyword hit; the winner is
// the matched rule earliest in priority order, so the outcome is identical
// to testing the rules one by one and returning the first match.
type Classifier struct {
	rules    []Rule
	matcher  *ahocorasick.Matcher
	keywords []string
	// rank[i] is the priority rank of the rule owning keywords[i]. A keyword
	// shared by several rules keeps the best (lowest) rank.
	rank []int
	log  logger.Interface
}

// NewClassifier builds a classifier from an ordered rule table.
func NewClassifier(rules []Rule, log logger.Interface) (*Classifier, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	c := &Classifier{rules: rules, log: log}

	ranks := make(map[string]int)
	for i, rule := range rules {
		for _, kw := range rule.Keywords {
			normalized := strings.ToLower(strings.TrimSpace(kw))
			if normalized == "" {
				continue
			}
			if existing, ok := ranks[normalized]; !ok || i < existing {
				ranks[normalized] = i
			}
		}
	}

	c.keywords = make([]string, 0, len(ranks))
	c.rank = make([]int, 0, len(ranks))
	for kw, r := range ranks {
		c.keywords = append(c.keywords, kw)
		c.rank = append(c.rank, r)
	}
	c.matcher = ahocorasick.NewStringMatcher(c.keywords)

	log.Debug("sector classifier initialized",
		"rules", len(rules),
		"keywords", len(c.keywords))

	return c, nil
}

// Classify maps article text and an optional pre-extracted category hint to
// a sector code. A hint that normalizes to a valid code short-circuits the
// text analysis entirely; otherwise text and hint are folded into one
// lower-cased buffer and scanned against the keyword table. No match means
// Umum. Classify is pure: identical input always yields identical output.
func (c *Classifier) Classify(text, hint string) Code {
	if hint != "" {
		if code := Validate(hint); code != Umum {
			return code
		}
	}

	if text == "" && hint == "" {
		return Umum
	}

	var buffer strings.Builder
	buffer.WriteString(strings.ToLower(text))
	if hint != "" {
		buffer.WriteByte(' ')
		buffer.WriteString(strings.ToLower(hint))
	}

	best := len(c.rules)
	for _, hit := range c.matcher.Match([]byte(buffer.String())) {
		if hit < len(c.rank) && c.rank[hit] < best {
			best = c.rank[hit]
		}
	}

	if best == len(c.rules) {
		return Umum
	}
	return c.rules[best].Code
}

// RuleCount returns the number of rules in the table.
func (c *Classifier) RuleCount() int {
	return len(c.rules)
}

// KeywordCount returns the number of distinct keywords in the automaton.
func (c *Classifier) KeywordCount() int {
	return len(c.keywords)
}
