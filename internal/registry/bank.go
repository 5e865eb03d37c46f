package registry

import (
	"fmt"

	"coursecraft/internal/model"
)

// BankVersion is the current schema version for question-bank payloads.
//
// History:
//
//	v1  banks embedded full question objects
//	v2  banks reference questions by artifact id and carry a settings block
const BankVersion = "2"

func bankDef() *TypeDef {
	return &TypeDef{
		Type:           model.TypeQuestionBank,
		CurrentVersion: BankVersion,
		Validate:       validateBank,
		Steps: map[string]Step{
			"1": {To: "2", Apply: bankV1toV2},
		},
	}
}

func validateBank(a *model.Artifact) error {
	var b model.QuestionBank
	if err := decodePayload(a.Data, &b); err != nil {
		return &ValidationError{ArtifactType: a.Type, Reason: err.Error()}
	}
	if err := b.CheckInvariants(); err != nil {
		return &ValidationError{ArtifactType: a.Type, Reason: err.Error()}
	}
	return nil
}

// bankV1toV2 replaces the embedded question objects with their ids and
// adds the settings block.
func bankV1toV2(data map[string]any) (map[string]any, error) {
	out := copyMap(data)

	embedded, ok := data["questions"].([]any)
	if !ok && data["questions"] != nil {
		return nil, fmt.Errorf("questions is not a list")
	}
	ids := make([]any, 0, len(embedded))
	for i, raw := range embedded {
		q, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("embedded question %d is not an object", i+1)
		}
		id, _ := q["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("embedded question %d has no id", i+1)
		}
		ids = append(ids, id)
	}
	out["questionIds"] = ids
	delete(out, "questions")

	if _, ok := out["settings"]; !ok {
		out["settings"] = map[string]any{}
	}
	return out, nil
}
