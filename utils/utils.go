package utils

import (
	"strings"
	"unicode"
)

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// ToPascalCase concatenates the words of s with each first letter
// upper-cased: "denim jacket" -> "DenimJacket", "t shirt" -> "TShirt".
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}
