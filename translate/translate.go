// Package translate localizes user-visible strings.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

// en-US comes first so unmatched locales print the keys unchanged.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.German,
	language.French,
}

var matcher = language.NewMatcher(supported)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("blinkcpu: locale: %v", err)
	}

	SetLocales(locales...)
}

// SetLocales selects the best catalog language for the given BCP 47 locales,
// falling back to en-US when none are given.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		if tag, err := language.Parse(l); err == nil {
			tags = append(tags, tag)
		}
	}

	_, index, _ := matcher.Match(tags...)
	printer = message.NewPrinter(supported[index])
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
