package contact

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// Normalization is deterministic and pure: two spellings of the same human
// value normalize to the same string, so their content hashes collide on
// purpose. Every canonical form feeds the hash key, which is persisted.

// NormalizeWords trims, strips symbol and punctuation runes except '/' and
// '#', collapses whitespace runs, and capitalizes each word.
func NormalizeWords(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '/' || r == '#' {
			return r
		}
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(text))

	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NormalizeCode trims and uppercases state and postal codes.
func NormalizeCode(codeText string) string {
	return strings.ToUpper(strings.TrimSpace(codeText))
}

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// ValidatePhoneText reports format problems with a candidate phone number.
// An empty result means the candidate is acceptable.
func ValidatePhoneText(candidate string) []string {
	if !phonePattern.MatchString(candidate) {
		return []string{PhoneFormatMessage}
	}
	return nil
}

// ValidateEmailText reports format problems with a candidate email address.
// The address must parse as a bare RFC 822 address with a dotted domain.
func ValidateEmailText(candidate string) []string {
	if !validEmail(candidate) {
		return []string{EmailFormatMessage}
	}
	return nil
}

func validEmail(candidate string) bool {
	parsed, err := mail.ParseAddress(candidate)
	if err != nil || parsed.Address != candidate {
		return false
	}
	at := strings.LastIndex(candidate, "@")
	if at <= 0 || at == len(candidate)-1 {
		return false
	}
	return strings.Contains(candidate[at+1:], ".")
}

// ValidateMailText reports format problems with a candidate mail address in
// its comma-separated text form.
func ValidateMailText(candidate string) []string {
	parsed := ParseMailAddress(candidate)
	if parsed == nil {
		return []string{MailFormatMessage}
	}
	return parsed.Validate()
}
