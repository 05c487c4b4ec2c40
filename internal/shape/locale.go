package shape

import "golang.org/x/text/language"

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// CanonicalLocale returns the canonical BCP 47 form of tag.
// Empty or malformed tags yield DefaultLocale and false.
func CanonicalLocale(tag string) (string, bool) {
	if tag == "" {
		return DefaultLocale, false
	}
	t, err := language.Parse(tag)
	if err != nil {
		return DefaultLocale, false
	}
	return t.String(), true
}
