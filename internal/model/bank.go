package model

import "fmt"

// BankSettings are delivery options for a question bank
type BankSettings struct {
	PassingGrade    *int `json:"passingGrade,omitempty"`
	AttemptsAllowed *int `json:"attemptsAllowed,omitempty"`
}

// QuestionBank is the payload of a "question-bank" artifact. Questions are
// referenced by artifact id, never embedded.
type QuestionBank struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	QuestionIDs []string     `json:"questionIds"`
	Settings    BankSettings `json:"settings"`
}

// CheckInvariants enforces the bank's structural rules.
func (b *QuestionBank) CheckInvariants() error {
	if b.Title == "" {
		return fmt.Errorf("question bank must have a title")
	}
	seen := make(map[string]bool, len(b.QuestionIDs))
	for _, id := range b.QuestionIDs {
		if id == "" {
			return fmt.Errorf("question bank references an empty question id")
		}
		if seen[id] {
			return fmt.Errorf("question bank references question %s twice", id)
		}
		seen[id] = true
	}
	return nil
}
