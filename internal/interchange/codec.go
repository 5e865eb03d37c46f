package interchange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"coursecraft/internal/model"
	"coursecraft/internal/registry"
)

// Codec converts rows to quiz-question artifacts and back. It is
// stateless beyond the registry handle and safe for concurrent use.
type Codec struct {
	reg *registry.Registry
}

// NewCodec creates a codec over the given type registry.
func NewCodec(reg *registry.Registry) *Codec {
	return &Codec{reg: reg}
}

// Import maps each row to exactly one quiz-question artifact owned by
// projectID and authored by author. Rows that fail type-label lookup,
// answer-count validation or correct-index validation are excluded from
// the artifacts and reported with their 1-based row number and a reason
// code; one malformed row never blocks the rest of the batch.
func (c *Codec) Import(rows []Row, projectID, author string) ImportResult {
	result := ImportResult{Artifacts: make([]*model.Artifact, 0, len(rows))}

	for i, row := range rows {
		rowNum := i + 1
		artifact, rowErr := c.importRow(row, rowNum, projectID, author)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}
	return result
}

func (c *Codec) importRow(row Row, rowNum int, projectID, author string) (*model.Artifact, *RowError) {
	form, ok := formByLabel[strings.TrimSpace(row.Type)]
	if !ok {
		return nil, &RowError{Row: rowNum, Code: ReasonUnknownType,
			Message: fmt.Sprintf("unknown question type %q", row.Type)}
	}

	if strings.TrimSpace(row.Question) == "" {
		return nil, &RowError{Row: rowNum, Code: ReasonEmptyQuestion, Message: "question cell is empty"}
	}

	// Blank answer cells are skipped entirely, not turned into empty
	// answers; correct-answer indices keep pointing at the original
	// answer columns.
	answers := make([]model.Answer, 0, len(row.Answers))
	posByColumn := make(map[int]int)
	for col, cell := range row.Answers {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		posByColumn[col+1] = len(answers)
		answers = append(answers, model.Answer{
			ID:   uuid.NewString(),
			Text: model.FromPlainText(cell),
		})
	}
	if len(answers) == 0 {
		return nil, &RowError{Row: rowNum, Code: ReasonNoAnswers, Message: "row has no answer cells"}
	}

	for _, part := range strings.Split(row.CorrectAnswer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, err := strconv.Atoi(part)
		if err != nil {
			return nil, &RowError{Row: rowNum, Code: ReasonBadIndex,
				Message: fmt.Sprintf("correct-answer index %q is not a number", part)}
		}
		pos, ok := posByColumn[col]
		if !ok {
			return nil, &RowError{Row: rowNum, Code: ReasonIndexRange,
				Message: fmt.Sprintf("correct-answer index %d does not match an answer column", col)}
		}
		answers[pos].IsCorrect = true
	}

	question := model.QuizQuestion{
		QuestionForm: form,
		Prompt:       model.FromPlainText(row.Question),
		Answers:      answers,
		Feedback: model.Feedback{
			Correct:   model.FromPlainText(row.CorrectFeedback),
			Incorrect: model.FromPlainText(row.IncorrectFeedback),
		},
	}
	if err := question.CheckInvariants(); err != nil {
		return nil, &RowError{Row: rowNum, Code: ReasonAnswerRule, Message: err.Error()}
	}

	data, err := registry.EncodePayload(&question)
	if err != nil {
		return nil, &RowError{Row: rowNum, Code: ReasonAnswerRule, Message: err.Error()}
	}
	return model.NewArtifact(projectID, model.TypeQuizQuestion, registry.QuestionVersion, author, data), nil
}

// Export projects quiz-question artifacts into interchange rows: prompt,
// answer text and feedback through the plain-text projection, correct
// flags re-encoded as the comma-separated 1-based index list. Exported
// rows have no blank answer cells, so indices equal answer positions.
func (c *Codec) Export(artifacts []*model.Artifact) ([]Row, error) {
	rows := make([]Row, 0, len(artifacts))

	for _, a := range artifacts {
		q, err := c.reg.DecodeQuestion(a)
		if err != nil {
			return nil, fmt.Errorf("export artifact %s: %w", a.ID, err)
		}

		row := Row{
			Type:              labelByForm[q.QuestionForm],
			Question:          q.Prompt.PlainText(),
			CorrectFeedback:   q.Feedback.Correct.PlainText(),
			IncorrectFeedback: q.Feedback.Incorrect.PlainText(),
		}

		var correct []int
		for i, ans := range q.Answers {
			row.Answers = append(row.Answers, ans.Text.PlainText())
			if ans.IsCorrect {
				correct = append(correct, i+1)
			}
		}
		sort.Ints(correct)

		parts := make([]string, len(correct))
		for i, idx := range correct {
			parts[i] = strconv.Itoa(idx)
		}
		row.CorrectAnswer = strings.Join(parts, ",")

		rows = append(rows, row)
	}
	return rows, nil
}
