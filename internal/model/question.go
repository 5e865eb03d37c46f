package model

import "fmt"

// QuestionForm defines how a quiz question is answered
type QuestionForm string

const (
	FormSingleCorrect QuestionForm = "single_correct" // exactly one correct answer
	FormMultiCorrect  QuestionForm = "multi_correct"  // one or more correct answers
	FormTrueFalse     QuestionForm = "true_false"     // exactly two answers, one correct
)

// Answer is one choice of a quiz question
type Answer struct {
	ID        string   `json:"id"`
	Text      Document `json:"text"`
	IsCorrect bool     `json:"isCorrect"`
}

// Feedback holds the prose shown after answering
type Feedback struct {
	Correct   Document `json:"correct"`
	Incorrect Document `json:"incorrect"`
}

// QuestionSettings are per-question delivery options
type QuestionSettings struct {
	Points    *int  `json:"points,omitempty"`
	Attempts  *int  `json:"attempts,omitempty"`
	Randomize *bool `json:"randomize,omitempty"`
}

// QuizQuestion is the payload of a "quiz-question" artifact
type QuizQuestion struct {
	QuestionForm QuestionForm     `json:"questionForm"`
	Prompt       Document         `json:"prompt"`
	Answers      []Answer         `json:"answers"`
	Feedback     Feedback         `json:"feedback"`
	Settings     QuestionSettings `json:"settings"`
}

// CorrectCount returns how many answers are flagged correct.
func (q *QuizQuestion) CorrectCount() int {
	n := 0
	for _, a := range q.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// CheckInvariants enforces the answer-count rules per question form:
// true/false questions have exactly two answers and exactly one correct,
// single-correct questions exactly one correct, multi-correct at least one.
func (q *QuizQuestion) CheckInvariants() error {
	if len(q.Answers) == 0 {
		return fmt.Errorf("question has no answers")
	}
	correct := q.CorrectCount()

	switch q.QuestionForm {
	case FormTrueFalse:
		if len(q.Answers) != 2 {
			return fmt.Errorf("true/false question must have exactly 2 answers, has %d", len(q.Answers))
		}
		if correct != 1 {
			return fmt.Errorf("true/false question must have exactly 1 correct answer, has %d", correct)
		}
	case FormSingleCorrect:
		if correct != 1 {
			return fmt.Errorf("single-correct question must have exactly 1 correct answer, has %d", correct)
		}
	case FormMultiCorrect:
		if correct < 1 {
			return fmt.Errorf("multi-correct question must have at least 1 correct answer")
		}
	default:
		return fmt.Errorf("unknown question form %q", q.QuestionForm)
	}
	return nil
}
