/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

// Question is a single multiple-choice entry from the question bank.
// Questions are shared between rounds and must never be modified.
type Question struct {
	ID         int      `json:"id" yaml:"id"`
	Text       string   `json:"question" yaml:"question"`
	Options    []string `json:"options" yaml:"options"`
	Answer     int      `json:"correctAnswer" yaml:"correctAnswer"`
	Category   string   `json:"category" yaml:"category"`
	Difficulty int      `json:"difficulty" yaml:"difficulty"`
}

// QuestionView is what a player is allowed to see before answering.
type QuestionView struct {
	ID         int      `json:"id"`
	Number     int      `json:"number"`
	Total      int      `json:"total"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Category   string   `json:"category,omitempty"`
	Difficulty int      `json:"difficulty,omitempty"`
	Suppressed []int    `json:"suppressed,omitempty"`
}

// FallbackPool is served when the question bank cannot be loaded.
func FallbackPool() []Question {
	return []Question{
		{
			ID:         1,
			Text:       "Which animal says \"Meow\"?",
			Options:    []string{"Dog", "Cat", "Cow", "Duck"},
			Answer:     1,
			Category:   "Animals",
			Difficulty: 1,
		},
		{
			ID:         2,
			Text:       "What is 2 + 2?",
			Options:    []string{"3", "4", "5", "6"},
			Answer:     1,
			Category:   "Math",
			Difficulty: 1,
		},
	}
}
