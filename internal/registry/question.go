package registry

import (
	"fmt"

	"github.com/google/uuid"

	"coursecraft/internal/model"
)

// QuestionVersion is the current schema version for quiz-question payloads.
//
// History:
//
//	v1  prompt, answer text and feedback stored as plain strings
//	v2  prose fields became rich-text documents
//	v3  answers gained stable ids; delivery options moved into a settings block
const QuestionVersion = "3"

func questionDef() *TypeDef {
	return &TypeDef{
		Type:           model.TypeQuizQuestion,
		CurrentVersion: QuestionVersion,
		Validate:       validateQuestion,
		Steps: map[string]Step{
			"1": {To: "2", Apply: questionV1toV2},
			"2": {To: "3", Apply: questionV2toV3},
		},
	}
}

func validateQuestion(a *model.Artifact) error {
	var q model.QuizQuestion
	if err := decodePayload(a.Data, &q); err != nil {
		return &ValidationError{ArtifactType: a.Type, Reason: err.Error()}
	}
	if err := q.CheckInvariants(); err != nil {
		return &ValidationError{ArtifactType: a.Type, Reason: err.Error()}
	}
	if q.Prompt.IsEmpty() {
		return &ValidationError{ArtifactType: a.Type, Reason: "question has no prompt"}
	}
	docs := []model.Document{q.Prompt, q.Feedback.Correct, q.Feedback.Incorrect}
	for i, ans := range q.Answers {
		if ans.ID == "" {
			return &ValidationError{ArtifactType: a.Type, Reason: fmt.Sprintf("answer %d has no id", i+1)}
		}
		docs = append(docs, ans.Text)
	}
	for _, d := range docs {
		if err := model.ValidateDocument(d); err != nil {
			return &ValidationError{ArtifactType: a.Type, Reason: err.Error()}
		}
	}
	return nil
}

// questionV1toV2 lifts the v1 plain-string prose fields (prompt, answer
// text, correctFeedback/incorrectFeedback) into rich-text documents.
func questionV1toV2(data map[string]any) (map[string]any, error) {
	out := copyMap(data)

	prompt, err := stringToDocMap(data["prompt"], "prompt")
	if err != nil {
		return nil, err
	}
	out["prompt"] = prompt

	answers, err := answerList(data)
	if err != nil {
		return nil, err
	}
	migrated := make([]any, 0, len(answers))
	for i, raw := range answers {
		ans, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("answer %d is not an object", i+1)
		}
		cp := copyMap(ans)
		text, err := stringToDocMap(ans["text"], fmt.Sprintf("answer %d text", i+1))
		if err != nil {
			return nil, err
		}
		cp["text"] = text
		migrated = append(migrated, cp)
	}
	out["answers"] = migrated

	correct, err := stringToDocMap(data["correctFeedback"], "correct feedback")
	if err != nil {
		return nil, err
	}
	incorrect, err := stringToDocMap(data["incorrectFeedback"], "incorrect feedback")
	if err != nil {
		return nil, err
	}
	out["feedback"] = map[string]any{"correct": correct, "incorrect": incorrect}
	delete(out, "correctFeedback")
	delete(out, "incorrectFeedback")

	return out, nil
}

// questionV2toV3 assigns ids to answers that lack one and gathers the
// loose points/attempts/randomize keys into the settings block.
func questionV2toV3(data map[string]any) (map[string]any, error) {
	out := copyMap(data)

	answers, err := answerList(data)
	if err != nil {
		return nil, err
	}
	migrated := make([]any, 0, len(answers))
	for i, raw := range answers {
		ans, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("answer %d is not an object", i+1)
		}
		cp := copyMap(ans)
		if id, _ := cp["id"].(string); id == "" {
			cp["id"] = uuid.NewString()
		}
		migrated = append(migrated, cp)
	}
	out["answers"] = migrated

	settings := map[string]any{}
	for _, key := range []string{"points", "attempts", "randomize"} {
		if v, ok := data[key]; ok {
			settings[key] = v
			delete(out, key)
		}
	}
	out["settings"] = settings

	return out, nil
}

func answerList(data map[string]any) ([]any, error) {
	raw, ok := data["answers"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("answers is not a list")
	}
	return list, nil
}

// stringToDocMap converts a plain string prose field into the map form of
// a single-paragraph-per-line document.
func stringToDocMap(v any, field string) (map[string]any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s is not a string", field)
	}
	return EncodePayload(model.FromPlainText(s))
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
