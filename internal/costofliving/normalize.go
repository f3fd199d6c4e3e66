package costofliving

import (
	"strings"

	"github.com/iwvelando/col-retirement/pkg/constants"
)

// NormalizePostalCode strips every non-digit character, keeps the first five
// digits so ZIP+4 input resolves to its base code, and left-pads with zeros.
// It never fails; empty input yields "00000".
func NormalizePostalCode(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		digits.WriteRune(r)
		if digits.Len() == constants.PostalCodeLength {
			break
		}
	}

	code := digits.String()
	if len(code) < constants.PostalCodeLength {
		code = strings.Repeat("0", constants.PostalCodeLength-len(code)) + code
	}
	return code
}
