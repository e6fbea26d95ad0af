package core

import "regexp"

// Matches the first unsigned decimal number in a message. At most one
// separator, dot or comma, with optional fractional digits.
var amountPattern = regexp.MustCompile(`\d+[.,]?\d*`)

// ExtractAmount finds the first monetary value in a message.
//
// A message with several numbers uses the first occurrence: "gastei 25
// itens por 30 reais" extracts 25, not 30. That trade-off is
// deliberate and callers must not second-guess it. Returns false when
// no positive amount is present.
func ExtractAmount(text string) (Money, bool) {
	match := amountPattern.FindString(text)
	if match == "" {
		return Money{}, false
	}
	cents, err := ParseDecimalToCents(match)
	if err != nil {
		return Money{}, false
	}
	return Money{Cents: cents}, true
}
