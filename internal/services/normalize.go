package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dokuhost/admin-service/internal/models"
)

// phoneRegex validates a normalized phone: "+" followed by 10 or 11 digits
var phoneRegex = regexp.MustCompile(`^\+\d{10,11}$`)

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// nickRegex validates a nick: latin letters, digits and underscores, 3 to 50 chars
var nickRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

// nonDigitRegex strips separators out of raw phone input
var nonDigitRegex = regexp.MustCompile(`[^\d+]`)

// NormalizePhone brings a raw phone number to the canonical "+<digits>" form:
// separators are stripped, a leading "8" on an 11-digit number becomes "+7".
// Returns an error wrapping models.ErrValidation when the result does not
// match the expected format.
func NormalizePhone(raw string) (string, error) {
	phone := nonDigitRegex.ReplaceAllString(strings.TrimSpace(raw), "")

	switch {
	case strings.HasPrefix(phone, "+"):
		// already international
	case strings.HasPrefix(phone, "8") && len(phone) == 11:
		phone = "+7" + phone[1:]
	case phone != "":
		phone = "+" + phone
	}

	if !phoneRegex.MatchString(phone) {
		return "", fmt.Errorf("%w: phone must start with \"+\" and contain 10 to 11 digits", models.ErrValidation)
	}

	return phone, nil
}

// translitMap maps Cyrillic letters to their Latin transcription for nick
// generation
var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// transliterate converts a lowercased name to latin, keeping alphanumerics
func transliterate(text string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(text) {
		if latin, ok := translitMap[ch]; ok {
			b.WriteString(latin)
			continue
		}
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// GenerateNick builds a nick from first and last name by transliteration.
// The result always satisfies nickRegex.
func GenerateNick(firstName, lastName string) string {
	first := transliterate(firstName)
	last := transliterate(lastName)

	var nick string
	switch {
	case first == "" && last == "":
		nick = "user"
	case first == "":
		nick = last
	case last == "":
		nick = first
	default:
		nick = first + "_" + last
	}

	if len(nick) > 50 {
		nick = nick[:50]
	}
	if len(nick) < 3 {
		nick = "user_" + nick
	}

	return nick
}

// validateEmail normalizes and checks an email address
func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}
	return email, nil
}

// validatePassword checks the password length constraint
func validatePassword(password string) error {
	if len(password) < 5 || len(password) > 50 {
		return fmt.Errorf("%w: password must be from 5 to 50 characters", models.ErrValidation)
	}
	return nil
}

// validateName checks a first/last name length constraint
func validateName(field, name string) error {
	if l := len([]rune(strings.TrimSpace(name))); l < 3 || l > 50 {
		return fmt.Errorf("%w: %s must be from 3 to 50 characters", models.ErrValidation, field)
	}
	return nil
}

// validateNick checks the nick charset and length constraint
func validateNick(nick string) error {
	if !nickRegex.MatchString(nick) {
		return fmt.Errorf("%w: nick may contain only latin letters, digits and underscores, 3 to 50 characters", models.ErrValidation)
	}
	return nil
}
