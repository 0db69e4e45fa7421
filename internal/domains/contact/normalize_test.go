package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and capitalizes", "JOHN SMITH", "John Smith"},
		{"collapses whitespace", "  jane \t  doe  ", "Jane Doe"},
		{"strips punctuation", "O'Brien, Jr.", "Obrien Jr"},
		{"keeps slash and hash", "123 main st apt #4/b", "123 Main St Apt #4/b"},
		{"empty", "", ""},
		{"only punctuation", "...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeWords(tt.in))
		})
	}
}

func TestNormalizeWordsIsIdempotent(t *testing.T) {
	once := NormalizeWords("sample Street name")
	assert.Equal(t, once, NormalizeWords(once))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "CA", NormalizeCode(" ca "))
	assert.Equal(t, "90066", NormalizeCode("90066"))
}

func TestValidatePhoneText(t *testing.T) {
	assert.Empty(t, ValidatePhoneText("415-555-1234"))

	for _, bad := range []string{"", "4155551234", "415-555-123", "415-555-12345", "41a-555-1234", "415 555 1234"} {
		messages := ValidatePhoneText(bad)
		assert.Equal(t, []string{PhoneFormatMessage}, messages, "candidate %q", bad)
	}
}

func TestValidateEmailText(t *testing.T) {
	assert.Empty(t, ValidateEmailText("jane@example.com"))
	assert.Empty(t, ValidateEmailText("a.b+c@mail.example.org"))

	for _, bad := range []string{"", "jane", "jane@", "@example.com", "jane@localhost", "Jane Doe <jane@example.com>"} {
		messages := ValidateEmailText(bad)
		assert.Equal(t, []string{EmailFormatMessage}, messages, "candidate %q", bad)
	}
}

func TestValidateMailText(t *testing.T) {
	assert.Empty(t, ValidateMailText("1234 Main St, Los Angeles, CA 90066"))
	assert.Empty(t, ValidateMailText("1234 Main St, Suite 20, Los Angeles, CA 90066"))
	assert.Empty(t, ValidateMailText("1234 Main St, Los Angeles, CA, 90066"))

	for _, bad := range []string{"", "no commas here", "1234 Main St, Los Angeles", "1234 Main St, LA, CA 90066"} {
		messages := ValidateMailText(bad)
		assert.Equal(t, []string{MailFormatMessage}, messages, "candidate %q", bad)
	}
}
