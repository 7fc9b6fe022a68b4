package nudges

import (
	"fmt"
	"strings"
)

// catalogs holds nudge texts per language.
var catalogs = map[string]map[string]string{
	"fr": {
		"welcome":            "Bienvenue dans MoodSpace ! 🌟",
		"reminder.plan":      "Moment productif ! 🚀 C'est le moment idéal pour organiser tes tâches",
		"reminder.moodboard": "Pause créative ? 🎨 Pourquoi ne pas créer quelque chose dans ton moodboard ?",
		"encourage.one":      "Excellent travail ! 🎉 %d tâche terminée aujourd'hui !",
		"encourage.many":     "Excellent travail ! 🎉 %d tâches terminées aujourd'hui !",
	},
	"en": {
		"welcome":            "Welcome to MoodSpace! 🌟",
		"reminder.plan":      "Productive moment! 🚀 A great time to organise your tasks",
		"reminder.moodboard": "Creative break? 🎨 Why not add something to your moodboard?",
		"encourage.one":      "Great work! 🎉 %d task done today!",
		"encourage.many":     "Great work! 🎉 %d tasks done today!",
	},
}

func catalog(lang string) map[string]string {
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs["fr"]
}

// WelcomeMessage returns the first-visit greeting.
func WelcomeMessage(lang string) string {
	return catalog(lang)["welcome"]
}

// ReminderMessage returns the text of a productivity reminder.
func ReminderMessage(lang string, r Reminder) string {
	switch r {
	case ReminderPlanTasks:
		return catalog(lang)["reminder.plan"]
	case ReminderMoodboard:
		return catalog(lang)["reminder.moodboard"]
	}
	return ""
}

// EncouragementMessage returns the congratulation for completed tasks.
func EncouragementMessage(lang string, completed int) string {
	key := "encourage.many"
	if completed == 1 {
		key = "encourage.one"
	}
	return fmt.Sprintf(catalog(lang)[key], completed)
}
