// Package text holds the plain-text utilities used when reshaping issue and
// comment bodies: mention extraction and markdown cleaning.
package text

import (
	"regexp"
	"strings"
)

var (
	// Issue identifiers are an uppercase team key, a hyphen and a number,
	// e.g. "ENG-123".
	issueMentionRegex = regexp.MustCompile(`[A-Z]+-\d+`)
	// User handles are @ followed by word characters or hyphens.
	userMentionRegex = regexp.MustCompile(`@([A-Za-z0-9_-]+)`)

	whitespaceRegex = regexp.MustCompile(`\s+`)
	headingRegex    = regexp.MustCompile(`#{1,6}\s`)
	linkRegex       = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	boldRegex       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldUnderRegex  = regexp.MustCompile(`__(.*?)__`)
	italicRegex     = regexp.MustCompile(`\*([^*]+)\*`)
	italicUnder     = regexp.MustCompile(`_([^_]+)_`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
)

// Mentions holds the issue identifiers and user handles referenced in a
// piece of text, deduplicated in first-occurrence order.
type Mentions struct {
	Issues []string `json:"issues"`
	Users  []string `json:"users"`
}

// ExtractMentions scans text for issue-identifier and user-handle mentions.
// Both result lists are deduplicated preserving first-occurrence order.
// Empty input yields empty, non-nil lists.
func ExtractMentions(text string) Mentions {
	mentions := Mentions{
		Issues: []string{},
		Users:  []string{},
	}
	if text == "" {
		return mentions
	}

	seen := make(map[string]bool)
	for _, match := range issueMentionRegex.FindAllString(text, -1) {
		if !seen[match] {
			seen[match] = true
			mentions.Issues = append(mentions.Issues, match)
		}
	}

	seenUsers := make(map[string]bool)
	for _, match := range userMentionRegex.FindAllStringSubmatch(text, -1) {
		handle := match[1]
		if !seenUsers[handle] {
			seenUsers[handle] = true
			mentions.Users = append(mentions.Users, handle)
		}
	}

	return mentions
}

// MergeMentions unions additional mention sets into base, deduplicating and
// preserving first-occurrence order across the inputs.
func MergeMentions(base Mentions, others ...Mentions) Mentions {
	merged := Mentions{
		Issues: []string{},
		Users:  []string{},
	}
	seenIssues := make(map[string]bool)
	seenUsers := make(map[string]bool)

	appendSet := func(m Mentions) {
		for _, issue := range m.Issues {
			if !seenIssues[issue] {
				seenIssues[issue] = true
				merged.Issues = append(merged.Issues, issue)
			}
		}
		for _, user := range m.Users {
			if !seenUsers[user] {
				seenUsers[user] = true
				merged.Users = append(merged.Users, user)
			}
		}
	}

	appendSet(base)
	for _, other := range others {
		appendSet(other)
	}
	return merged
}

// CleanDescription normalizes a markdown description into plain text.
// Empty input yields nil; whitespace-only input yields a pointer to "".
//
// The cleaning is heuristic and deliberately shallow: whitespace runs are
// collapsed first, so heading markers lose their line anchoring and only the
// "#" run itself is stripped — heading text stays inline. Fenced code blocks
// and horizontal rules are whitespace-normalized, not removed. Downstream
// consumers depend on this exact output, so the limitation stays.
func CleanDescription(text string) *string {
	if text == "" {
		return nil
	}

	cleaned := whitespaceRegex.ReplaceAllString(text, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = headingRegex.ReplaceAllString(cleaned, "")
	cleaned = linkRegex.ReplaceAllString(cleaned, "$1")
	cleaned = boldRegex.ReplaceAllString(cleaned, "$1")
	cleaned = boldUnderRegex.ReplaceAllString(cleaned, "$1")
	cleaned = italicRegex.ReplaceAllString(cleaned, "$1")
	cleaned = italicUnder.ReplaceAllString(cleaned, "$1")
	cleaned = inlineCodeRegex.ReplaceAllString(cleaned, "$1")
	cleaned = strings.TrimSpace(cleaned)

	return &cleaned
}
