// Package translate renders user facing messages in the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK_LOCALE is used when the host reports no locale.
const FALLBACK_LOCALE = "en-US"

var printer = message.NewPrinter(message.MatchLanguage(hostLocales()...))

// hostLocales returns the preferred locales of the host, best first.
func hostLocales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("nescore: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{FALLBACK_LOCALE}
	}

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
