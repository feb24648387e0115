package fusion

import (
	"regexp"
	"strings"

	"github.com/lexlabs/gavel/internal/core/model"
)

// Ordered-precedence rule patterns. The exception pattern is checked across
// all matched text before any prohibitive pattern so that "illegal except
// for medicinal purposes" resolves to YES, not NO.
var (
	exceptionPattern = regexp.MustCompile(`except\s+for\s+medicinal\s+purposes`)

	prohibitivePattern = regexp.MustCompile(`\b(prohibit(s|ed|ion|ing)?|illegal(ly)?|forbid(s|den|ding)?|ban(s|ned|ning)?)\b`)

	permissivePattern = regexp.MustCompile(`\b(rights?|permit(s|ted|ting)?|allow(s|ed|ing)?|legal(ly)?)\b`)
)

// RuleVerdict derives a verdict from the language of the matched articles
// alone, with no model call. Precedence: exception > prohibition >
// permission > MAYBE.
func RuleVerdict(matches []model.RankedMatch) model.Verdict {
	if len(matches) == 0 {
		return model.VerdictMaybe
	}

	for _, m := range matches {
		if exceptionPattern.MatchString(strings.ToLower(m.Article.Text)) {
			return model.VerdictYes
		}
	}
	for _, m := range matches {
		if prohibitivePattern.MatchString(strings.ToLower(m.Article.Text)) {
			return model.VerdictNo
		}
	}
	for _, m := range matches {
		if permissivePattern.MatchString(strings.ToLower(m.Article.Text)) {
			return model.VerdictYes
		}
	}
	return model.VerdictMaybe
}
