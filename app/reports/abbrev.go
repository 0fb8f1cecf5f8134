package reports

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column headers wider than this many runes get abbreviated.
const abbrevThreshold = 10

// knownAbbreviations covers the long subject names that already have an
// established short form on printed result sheets.
var knownAbbreviations = map[string]string{
	"Mathematics":                              "MATH",
	"English Language":                         "ENG",
	"Social Studies":                           "SST",
	"Integrated Science":                       "SCI",
	"Religious Education":                      "RE",
	"Christian Religious Education":            "CRE",
	"Islamic Religious Education":              "IRE",
	"Physical Education":                       "PE",
	"Information and Communication Technology": "ICT",
	"Agriculture":                              "AGRIC",
	"Kiswahili":                                "KISW",
	"Literature in English":                    "LIT",
	"Fine Art":                                 "ART",
	"Business Studies":                         "BST",
}

// abbreviate shortens a subject name for use as a table column header.
// Known names use their established short form; otherwise names past the
// length threshold collapse to the upper-cased initials of their words.
func abbreviate(name string) string {
	if abbr, ok := knownAbbreviations[name]; ok {
		return abbr
	}
	if utf8.RuneCountInString(name) <= abbrevThreshold {
		return name
	}
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		initials.WriteRune(r)
	}
	return initials.String()
}

// abbreviateAll maps each subject to a unique abbreviation, suffixing
// collisions with a counter so legends stay unambiguous.
func abbreviateAll(subjects []string) []PageColumn {
	used := make(map[string]int)
	columns := make([]PageColumn, 0, len(subjects))
	for _, subject := range subjects {
		abbr := abbreviate(subject)
		if n, taken := used[abbr]; taken {
			used[abbr] = n + 1
			abbr = fmt.Sprintf("%s%d", abbr, n+1)
		}
		used[abbr]++
		columns = append(columns, PageColumn{Abbrev: abbr, Subject: subject})
	}
	return columns
}
