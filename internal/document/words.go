package document

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountToWords converts a monetary value to capitalized English words in
// the Indian numbering system (thousand, lakh, crore). The value is first
// rounded to two decimals, the way it is displayed, and the words reflect
// the whole-rupee portion of that rounded figure; paise are not spelled
// out. The caller appends "Only" where the document calls for it.
func AmountToWords(v float64) string {
	rounded := math.Round(v*100) / 100
	n := int64(rounded)
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + integerWords(-n)
	}
	return integerWords(n)
}

func integerWords(n int64) string {
	switch {
	case n < 20:
		return onesWords[n]
	case n < 100:
		return join(tensWords[n/10], onesWords[n%10])
	case n < 1000:
		return join(onesWords[n/100]+" Hundred", integerWordsBelow(n%100))
	case n < 100000:
		return join(integerWords(n/1000)+" Thousand", integerWordsBelow(n%1000))
	case n < 10000000:
		return join(integerWords(n/100000)+" Lakh", integerWordsBelow(n%100000))
	default:
		return join(integerWords(n/10000000)+" Crore", integerWordsBelow(n%10000000))
	}
}

func integerWordsBelow(n int64) string {
	if n == 0 {
		return ""
	}
	return integerWords(n)
}

func join(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
