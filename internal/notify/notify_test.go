package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDailyPrompt(t *testing.T) {
	title, msg := FormatDailyPrompt(7)
	assert.Equal(t, "Exercise reminder", title)
	assert.Equal(t, "You owe 7 exercises. Time for a set?", msg)

	_, msg = FormatDailyPrompt(1)
	assert.Equal(t, "You owe 1 exercise. One quick set?", msg)

	_, msg = FormatDailyPrompt(0)
	assert.Contains(t, msg, "Nothing owed")
}
