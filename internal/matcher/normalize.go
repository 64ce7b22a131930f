package matcher

import (
	"strings"
	"unicode"
)

// NormalizeName lowercases a team name, trims it, and strips a leading
// city prefix, leaving the nickname ("Los Angeles Lakers" -> "lakers").
func NormalizeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range cityPrefixes {
		if strings.HasPrefix(normalized, prefix+" ") {
			normalized = strings.TrimSpace(normalized[len(prefix):])
			break
		}
	}
	return strings.Join(strings.Fields(normalized), " ")
}

// CanonicalCode resolves a team name to the venue's team code via the
// static tables, with caller-supplied aliases taking precedence. Returns
// "" when the name is unknown.
func CanonicalCode(name string, aliases map[string]string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if code, ok := aliases[lower]; ok {
		return strings.ToLower(code)
	}
	if code, ok := fullNameToCode[lower]; ok {
		return code
	}
	normalized := NormalizeName(name)
	if code, ok := aliases[normalized]; ok {
		return strings.ToLower(code)
	}
	if code, ok := nicknameToCode[normalized]; ok {
		return code
	}
	return ""
}

// tokenize splits text into lowercase alphanumeric tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Similarity scores how well a team name matches a fragment of venue
// text (a market title, ticker, or side label), in [0,1]. A canonical
// code hit or full nickname containment scores 1; otherwise the score is
// the fraction of the normalized team tokens present in the text.
func Similarity(team, text string, aliases map[string]string) float64 {
	if team == "" || text == "" {
		return 0
	}

	textTokens := tokenize(text)
	tokenSet := make(map[string]struct{}, len(textTokens))
	for _, tok := range textTokens {
		tokenSet[tok] = struct{}{}
	}

	if code := CanonicalCode(team, aliases); code != "" {
		if _, ok := tokenSet[code]; ok {
			return 1
		}
		// Side labels and tickers sometimes carry codes glued to other
		// segments; a collapsed substring check covers those.
		collapsed := strings.ToLower(strings.Join(textTokens, ""))
		if collapsed == code {
			return 1
		}
		// Venue text may spell the team out instead of using the code.
		for _, tok := range textTokens {
			if nicknameToCode[tok] == code {
				return 1
			}
		}
	}

	teamTokens := tokenize(NormalizeName(team))
	if len(teamTokens) == 0 {
		return 0
	}
	matched := 0
	for _, tok := range teamTokens {
		if _, ok := tokenSet[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(teamTokens))
}
