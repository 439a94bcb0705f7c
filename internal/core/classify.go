package core

import (
	"strings"
	"unicode"
)

// statusRule pairs a match on normalized status text with its result.
type statusRule struct {
	match  func(s string) bool
	status Status
}

// statusRules are evaluated in order and the first match wins. The order
// decides ambiguous inputs: "KYC rejected" is a KYC case, not a rejection.
var statusRules = []statusRule{
	{
		match:  func(s string) bool { return s == "" },
		status: StatusOthers,
	},
	{
		match:  func(s string) bool { return strings.Contains(s, "kyc") },
		status: StatusKYCPending,
	},
	{
		match: func(s string) bool {
			return strings.Contains(s, "approval pending") ||
				(strings.Contains(s, "pending") && !strings.Contains(s, "kyc"))
		},
		status: StatusApprovalPending,
	},
	{
		match:  func(s string) bool { return strings.Contains(s, "reject") },
		status: StatusApprovalRejected,
	},
	{
		// "on" and "board" are substring checks, so "onboarded" qualifies.
		match: func(s string) bool {
			return strings.Contains(s, "on-board") ||
				strings.Contains(s, "on board") ||
				(strings.Contains(s, "on") && strings.Contains(s, "board"))
		},
		status: StatusOnBoarded,
	},
	{
		match:  func(s string) bool { return strings.Contains(s, "replac") },
		status: StatusReplacementRequired,
	},
}

// Classify maps free-text status to its canonical Status.
// It is pure and total: every input, including "", yields a status.
func Classify(raw string) Status {
	s := normalizeStatusText(raw)
	for _, rule := range statusRules {
		if rule.match(s) {
			return rule.status
		}
	}
	return StatusOthers
}

// normalizeStatusText lower-cases and trims raw, then replaces anything other
// than ASCII letters, digits, whitespace, '-', '(' and ')' with a space.
func normalizeStatusText(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '(', r == ')':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, s)
}
