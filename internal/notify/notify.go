package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Alert(message string) error {
	return beeep.Alert("tinyworkout", message, "")
}

// FormatDailyPrompt builds the reminder for the given owed count.
func FormatDailyPrompt(owed int) (string, string) {
	title := "Exercise reminder"
	switch owed {
	case 0:
		return title, "Nothing owed today. Nice work!"
	case 1:
		return title, "You owe 1 exercise. One quick set?"
	default:
		return title, fmt.Sprintf("You owe %d exercises. Time for a set?", owed)
	}
}
