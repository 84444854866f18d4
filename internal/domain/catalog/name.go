package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameFolder = cases.Lower(language.Spanish)

// NameKey returns the case-folded form of a display name used for uniqueness checks
func NameKey(name string) string {
	return nameFolder.String(strings.TrimSpace(name))
}
