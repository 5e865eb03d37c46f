// Package interchange converts between quiz-question artifacts and the
// flat, spreadsheet-compatible record layout used by the external
// authoring tool. Both directions are pure: the codec never touches
// storage, and row-level failures are collected instead of aborting the
// batch.
//
// Prose crosses this boundary as plain text. Rich-text formatting and
// non-paragraph block structure are lost on export and never
// reconstructed on import; that asymmetry is the accepted contract of
// the format, not a defect.
package interchange

import (
	"fmt"

	"coursecraft/internal/model"
)

// External question-type labels, mapped 1:1 to question forms.
const (
	LabelMultipleChoice   = "Multiple Choice"
	LabelMultipleResponse = "Multiple Response"
	LabelTrueFalse        = "True/False"
)

var formByLabel = map[string]model.QuestionForm{
	LabelMultipleChoice:   model.FormSingleCorrect,
	LabelMultipleResponse: model.FormMultiCorrect,
	LabelTrueFalse:        model.FormTrueFalse,
}

var labelByForm = map[model.QuestionForm]string{
	model.FormSingleCorrect: LabelMultipleChoice,
	model.FormMultiCorrect:  LabelMultipleResponse,
	model.FormTrueFalse:     LabelTrueFalse,
}

// Row is one record of the interchange layout. Answers holds the
// Answer1..AnswerN cells in column order, blanks included; CorrectAnswer
// is a comma-separated list of 1-based answer column indices.
type Row struct {
	Type              string
	Question          string
	Answers           []string
	CorrectAnswer     string
	CorrectFeedback   string
	IncorrectFeedback string
}

// Reason codes attached to row errors.
const (
	ReasonUnknownType   = "unknown_type"
	ReasonEmptyQuestion = "empty_question"
	ReasonNoAnswers     = "no_answers"
	ReasonBadIndex      = "bad_correct_index"
	ReasonIndexRange    = "correct_index_out_of_range"
	ReasonAnswerRule    = "answer_rule_violation"
	ReasonSaveFailed    = "save_failed"
)

// RowError reports a single bad interchange row. Errors are collected
// per batch and never abort an import.
type RowError struct {
	Row     int    `json:"row"` // 1-based data row number
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Code, e.Message)
}

// ImportResult is the outcome of an import batch: the artifacts built
// from valid rows and the errors for the rest.
type ImportResult struct {
	Artifacts []*model.Artifact
	Errors    []RowError
}
