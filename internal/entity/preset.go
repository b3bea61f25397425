package entity

import "strings"

// PresetQA is a canned chatbot answer keyed by its normalized question.
type PresetQA struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// NormalizeMessage is the single normalization used for both stored
// questions and incoming chat text.
func NormalizeMessage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
