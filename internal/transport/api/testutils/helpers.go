package testutils

import "strings"

// GenerateOverBytesUnderRunes строка из count рун по 4 байта: проходит проверки длины в рунах,
// но не проходит проверки длины в байтах.
func GenerateOverBytesUnderRunes(count int) string {
	return strings.Repeat("😁", count)
}
