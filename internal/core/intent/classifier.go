// Package intent classifies raw chat messages into the fixed intents that
// short-circuit or steer retrieval.
//
// Rules are evaluated in priority order and the first match wins:
// quick reply (greeting, thanks, farewell), self-referential, company
// profile, who-is. Anything else classifies as IntentNone.
package intent

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// Fixed quick replies.
const (
	GreetingReply = "สวัสดีค่ะ/ครับ"
	ThanksReply   = "ยินดีค่ะ/ครับ"
	FarewellReply = "สวัสดีค่ะ/ครับ"
)

var (
	greetingPattern = regexp.MustCompile(`^(สวัสดี|ดีจ้า|ดีครับ|ดีค่ะ|หวัดดี|hello|hi|hey|yo)!?$`)
	thanksPattern   = regexp.MustCompile(`^(ขอบคุณ|ขอบคุณครับ|ขอบคุณค่ะ|ขอบใจ|thanks|thx|thank you)!?$`)
	farewellPattern = regexp.MustCompile(`^(บ๊ายบาย|ลาแล้ว|ลาละ|goodbye|bye|see ya)!?$`)

	// Optional polite particle and question mark accepted after Thai questions.
	selfPattern = regexp.MustCompile(
		`^(?:who\s+am\s+i|(?:ฉัน|ผม|เรา|หนู)\s*(?:คือ|เป็น)\s*ใคร|(?:ฉัน|ผม|เรา|หนู)\s*ชื่อ\s*อะไร)` +
			`\s*(?:ครับ|คะ|ค่ะ|จ๊ะ|จ้ะ)?\s*[?？]?$`)

	whoIsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:who\s+is|who's)\s+(.+)$`),
		regexp.MustCompile(`^ใครคือ\s*(.+)$`),
		regexp.MustCompile(`^(.+?)\s*คือใคร\s*(?:ครับ|คะ|ค่ะ)?\s*[?？]?$`),
	}
)

// rule is one ordered predicate+extractor pair. raw is the trimmed message,
// folded is raw lower-cased.
type rule func(raw, folded string) (domain.Classification, bool)

// Classifier evaluates the ordered rule list.
type Classifier struct {
	companyPattern *regexp.Regexp
	rules          []rule
}

// NewClassifier creates a classifier that treats companyID as the
// company-profile marker. An empty companyID disables that rule.
func NewClassifier(companyID string) *Classifier {
	c := &Classifier{}
	if companyID != "" {
		c.companyPattern = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(companyID))
	}
	c.rules = []rule{
		fixed(greetingPattern, domain.IntentGreeting, GreetingReply),
		fixed(thanksPattern, domain.IntentThanks, ThanksReply),
		fixed(farewellPattern, domain.IntentFarewell, FarewellReply),
		selfReferential,
		c.company,
		whoIs,
	}
	return c
}

// Classify returns the first matching intent for msg.
func (c *Classifier) Classify(msg string) domain.Classification {
	raw := strings.TrimSpace(msg)
	folded := strings.ToLower(raw)
	for _, r := range c.rules {
		if cl, ok := r(raw, folded); ok {
			return cl
		}
	}
	return domain.Classification{Kind: domain.IntentNone}
}

// QuickReply returns the fixed reply for greeting, thanks or farewell messages.
func (c *Classifier) QuickReply(msg string) (string, bool) {
	cl := c.Classify(msg)
	if !cl.Kind.IsQuickReply() {
		return "", false
	}
	return cl.Reply, true
}

// IsSelfReferential reports whether msg asks who the user is.
func IsSelfReferential(msg string) bool {
	_, ok := selfReferential("", strings.ToLower(strings.TrimSpace(msg)))
	return ok
}

// IsCompanyQuery reports whether msg mentions the company identifier.
func (c *Classifier) IsCompanyQuery(msg string) bool {
	_, ok := c.company("", strings.ToLower(strings.TrimSpace(msg)))
	return ok
}

// WhoIsName returns the subject of a "who is X" message.
// The name keeps the caller's casing.
func WhoIsName(msg string) (string, bool) {
	cl, ok := whoIs(strings.TrimSpace(msg), "")
	return cl.Name, ok
}

func fixed(p *regexp.Regexp, kind domain.IntentKind, reply string) rule {
	return func(_, folded string) (domain.Classification, bool) {
		if !p.MatchString(folded) {
			return domain.Classification{}, false
		}
		return domain.Classification{Kind: kind, Reply: reply}, true
	}
}

func selfReferential(_, folded string) (domain.Classification, bool) {
	if !selfPattern.MatchString(folded) {
		return domain.Classification{}, false
	}
	return domain.Classification{Kind: domain.IntentSelfReferential}, true
}

func (c *Classifier) company(_, folded string) (domain.Classification, bool) {
	if c.companyPattern == nil || !c.companyPattern.MatchString(folded) {
		return domain.Classification{}, false
	}
	return domain.Classification{Kind: domain.IntentCompanyProfile}, true
}

func whoIs(raw, _ string) (domain.Classification, bool) {
	for _, p := range whoIsPatterns {
		m := p.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		name := cleanName(m[1])
		if name == "" {
			return domain.Classification{}, false
		}
		return domain.Classification{Kind: domain.IntentWhoIs, Name: name}, true
	}
	return domain.Classification{}, false
}

// cleanName trims whitespace, trailing question marks and Thai polite particles.
func cleanName(s string) string {
	s = strings.TrimSpace(s)
	for {
		before := s
		s = strings.TrimRight(s, "?？!. ")
		for _, p := range []string{"ครับ", "ค่ะ", "คะ"} {
			s = strings.TrimSuffix(s, p)
		}
		s = strings.TrimSpace(s)
		if s == before {
			return s
		}
	}
}
