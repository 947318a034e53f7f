package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name trims surrounding space and folds the name into NFC so visually equal
// names compare equal.
func Name(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
