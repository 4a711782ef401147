package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"hi", Greeting},
		{"Hello there", Greeting},
		{"hey, anyone home?", Greeting},
		{"I want to book a room", Booking},
		{"can I reserve something", Booking},
		{"how much is a night", Price},
		{"what does a suite cost", Price},
		{"goodbye", Farewell},
		{"bye", Farewell},
		{"see you later", Farewell},
		{"who are you", About},
		{"what is your name", About},
		{"asdfghjkl", Unknown},
		{"", Unknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.text), "text: %q", tc.text)
	}
}

func TestClassifyPriority(t *testing.T) {
	// Greeting rules run before booking rules.
	assert.Equal(t, Greeting, Classify("hi, I want to book a room"))
}

func TestClassifyWholeWords(t *testing.T) {
	// "highway" contains "hi" but is not a greeting.
	assert.Equal(t, Unknown, Classify("highway"))
}
