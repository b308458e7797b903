// Package scaffold materializes template trees: the embedded boilerplate for
// etch new and generator templates for etch generate. Rendering, placeholder
// patching and markup stripping run per file, in that order.
package scaffold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Data is the value rendered into templates. Templates use [[ and ]] as
// action delimiters so brace-heavy sources (JSX, Gradle) pass through
// untouched.
type Data struct {
	Name     string // the name exactly as the user typed it
	Pascal   string
	Camel    string
	Kebab    string
	Snake    string
	Bundle   string
	Packager string
}

// NewData derives every case form of name. The splitter understands hyphens,
// underscores, spaces and camel humps, so "user-profile", "UserProfile" and
// "userProfile" all produce the same forms.
func NewData(name, bundle, packager string) Data {
	words := splitWords(name)
	// Caser держит внутреннее состояние, поэтому свой на каждый вызов.
	titler := cases.Title(language.English, cases.NoLower)
	return Data{
		Name:     name,
		Pascal:   joinPascal(titler, words),
		Camel:    joinCamel(titler, words),
		Kebab:    strings.Join(lowerAll(words), "-"),
		Snake:    strings.Join(lowerAll(words), "_"),
		Bundle:   bundle,
		Packager: packager,
	}
}

func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				// Break before a hump, and before the last capital of an
				// acronym run ("HTTPServer" splits as HTTP + Server).
				startsAcronymTail := unicode.IsUpper(prev) &&
					i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if !unicode.IsUpper(prev) || startsAcronymTail {
					flush()
				}
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	if len(words) == 0 {
		return []string{name}
	}
	return words
}

func joinPascal(titler cases.Caser, words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(titler.String(w))
	}
	return b.String()
}

func joinCamel(titler cases.Caser, words []string) string {
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(titler.String(w))
	}
	return b.String()
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
