package syntax

import "strings"

// Modifiers is a set of declaration modifiers.
type Modifiers uint32

// Modifier bits. ReadOnly covers C# `readonly` and Java `final`.
const (
	Public Modifiers = 1 << iota
	Protected
	Private
	Internal
	Static
	ReadOnly
	Abstract
	Sealed
	Virtual
	Override
	Const
	Volatile
	Transient
	Synchronized
	Native
	Partial
	Async
	Extern
	Unsafe
	New
	Default
)

// Has reports whether all bits of other are set.
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

type modifierWord struct {
	bit    Modifiers
	csharp string
	java   string
}

// Render order follows the usual conventions of both languages.
var modifierWords = []modifierWord{
	{Public, "public", "public"},
	{Protected, "protected", "protected"},
	{Private, "private", "private"},
	{Internal, "internal", ""},
	{New, "new", ""},
	{Default, "", "default"},
	{Abstract, "abstract", "abstract"},
	{Static, "static", "static"},
	{Sealed, "sealed", ""},
	{Virtual, "virtual", ""},
	{Override, "override", ""},
	{Const, "const", ""},
	{ReadOnly, "readonly", "final"},
	{Volatile, "volatile", "volatile"},
	{Transient, "", "transient"},
	{Synchronized, "", "synchronized"},
	{Native, "", "native"},
	{Extern, "extern", ""},
	{Unsafe, "unsafe", ""},
	{Partial, "partial", ""},
	{Async, "async", ""},
}

// ParseModifiers reads whitespace separated modifier keywords of either
// language. Unknown words (annotations, attributes) are ignored.
func ParseModifiers(text string) Modifiers {
	var mods Modifiers

	for _, word := range strings.Fields(text) {
		for _, mw := range modifierWords {
			if word == mw.csharp || word == mw.java {
				mods |= mw.bit
				break
			}
		}
	}

	return mods
}

// ParseModifierList is ParseModifiers over a list of keywords.
func ParseModifierList(words []string) Modifiers {
	return ParseModifiers(strings.Join(words, " "))
}

// Words returns the keywords of m in canonical order for lang.
func (m Modifiers) Words(lang Language) []string {
	words := make([]string, 0, 4)

	for _, mw := range modifierWords {
		if !m.Has(mw.bit) {
			continue
		}

		word := mw.csharp
		if lang == Java {
			word = mw.java
		}

		if word != "" {
			words = append(words, word)
		}
	}

	return words
}

// Render returns the keywords of m joined by spaces.
func (m Modifiers) Render(lang Language) string {
	return strings.Join(m.Words(lang), " ")
}
