// ABOUTME: Abbreviated weekday labels for the weekly mood chart
// ABOUTME: French matches the app's default locale; English is the alternative

package store

import (
	"strings"
	"time"
)

// Supported label languages.
const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"
)

// weekdayLabels is indexed by time.Weekday (Sunday first).
var weekdayLabels = map[string][7]string{
	LanguageFrench:  {"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
	LanguageEnglish: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// WeekdayLabel returns the short weekday name of d in lang. Region suffixes
// ("fr-FR", "en_US") are ignored and unknown languages fall back to French.
func WeekdayLabel(lang string, d time.Weekday) string {
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	labels, ok := weekdayLabels[lang]
	if !ok {
		labels = weekdayLabels[LanguageFrench]
	}
	return labels[d]
}
