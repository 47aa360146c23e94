package sanitize

import "regexp"

// Kind names a built-in character class for input sanitizing.
type Kind string

const (
	NumbersOnly    Kind = "numbers-only"
	LettersOnly    Kind = "letters-only"
	Alphanumeric   Kind = "alphanumeric"
	Phone          Kind = "phone"
	Email          Kind = "email"
	NoSpecialChars Kind = "no-special-chars"
)

// patterns match the characters to STRIP for each kind.
var patterns = map[Kind]*regexp.Regexp{
	NumbersOnly:    regexp.MustCompile(`[^0-9]`),
	LettersOnly:    regexp.MustCompile(`[^a-zA-Z]`),
	Alphanumeric:   regexp.MustCompile(`[^a-zA-Z0-9]`),
	Phone:          regexp.MustCompile(`[^0-9+\-()]`),
	Email:          regexp.MustCompile(`[^a-zA-Z0-9@._\-]`),
	NoSpecialChars: regexp.MustCompile(`[^a-zA-Z0-9\s]`),
}

type Config struct {
	Kind Kind
	// Pattern overrides Kind when set. It must match the characters to remove.
	Pattern *regexp.Regexp
	// MaxLength truncates the sanitized value when > 0, counted in runes.
	MaxLength int
}

// Func strips disallowed characters and truncates. It never fails; unknown
// kinds pass the value through untouched apart from truncation.
type Func func(string) string

// New builds a sanitizer for the given config.
func New(cfg Config) Func {
	pattern := cfg.Pattern
	if pattern == nil {
		pattern = patterns[cfg.Kind]
	}

	return func(value string) string {
		sanitized := value
		if pattern != nil {
			sanitized = pattern.ReplaceAllString(sanitized, "")
		}

		if cfg.MaxLength > 0 {
			runes := []rune(sanitized)
			if len(runes) > cfg.MaxLength {
				sanitized = string(runes[:cfg.MaxLength])
			}
		}

		return sanitized
	}
}
