/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import "fmt"

// Tier buckets a finished round by its number of correct answers.
type Tier int

const (
	Encouragement Tier = iota
	Mid
	Top
)

const (
	topThreshold = 8
	midThreshold = 5
)

func TierFor(correct int) Tier {
	switch {
	case correct >= topThreshold:
		return Top
	case correct >= midThreshold:
		return Mid
	default:
		return Encouragement
	}
}

func (t Tier) String() string {
	switch t {
	case Top:
		return "top"
	case Mid:
		return "mid"
	default:
		return "encouragement"
	}
}

// Message is the line shown on the results screen.
func (t Tier) Message() string {
	switch t {
	case Top:
		return "🎉 You're a genius! Excellent result!"
	case Mid:
		return "👍 Good job!"
	default:
		return "💪 Don't give up! Try again!"
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "top":
		*t = Top
	case "mid":
		*t = Mid
	case "encouragement":
		*t = Encouragement
	default:
		return fmt.Errorf("unknown tier %q", text)
	}

	return nil
}
