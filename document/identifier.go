package document

import "github.com/kdlsoa/kdl/internal/classify"

// IsBareIdentifier reports whether s may be written as a bare identifier
// (requiring no quoting) in KDL 2.0.0: every rune must be a legal identifier
// character, the first additionally must not be a digit, and a lone "-" or
// "+" that is followed immediately by a digit is rejected (it would lex as a
// signed number instead).
//
// KDL 2.0.0 has one grammar, not a family of dialects, so there is no
// relaxed-syntax mode to account for here.
func IsBareIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	// Keywords and sole sign characters are reserved and must be quoted even
	// though their characters would otherwise be legal.
	switch s {
	case "true", "false", "null", "inf", "-inf", "nan", "-", "+":
		return false
	}

	first := true
	runes := []rune(s)
	for i, r := range runes {
		if first {
			if !classify.IsIdentifierStart(r) {
				return false
			}
			if classify.IsSign(r) && i+1 < len(runes) && classify.IsDigit(runes[i+1]) {
				return false
			}
			first = false
			continue
		}
		if !classify.IsIdentifierContinue(r) {
			return false
		}
	}
	return true
}
