package model

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactType is the semantic tag identifying an artifact's payload shape
type ArtifactType string

const (
	TypeQuizQuestion ArtifactType = "quiz-question"
	TypeQuestionBank ArtifactType = "question-bank"
)

// Metadata is the audit block every artifact carries. All fields are
// required; CreatedBy and CreatedAt are fixed at creation and writes
// only ever advance ModifiedAt.
type Metadata struct {
	CreatedBy  string    `json:"createdBy" bson:"createdBy"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	ModifiedBy string    `json:"modifiedBy" bson:"modifiedBy"`
	ModifiedAt time.Time `json:"modifiedAt" bson:"modifiedAt"`
}

// Artifact is the universal envelope for typed, schema-versioned content.
// Data is opaque here; its shape is determined by (Type, SchemaVersion)
// and decoded through the type registry. Type is never reassigned after
// creation and SchemaVersion only ever advances through migrations.
type Artifact struct {
	ID            string         `json:"id" bson:"_id"`
	ProjectID     string         `json:"projectId" bson:"projectId"`
	Type          ArtifactType   `json:"type" bson:"type"`
	SchemaVersion string         `json:"schemaVersion" bson:"schemaVersion"`
	Metadata      Metadata       `json:"metadata" bson:"metadata"`
	Data          map[string]any `json:"data" bson:"data"`
}

// NewArtifact creates an artifact envelope with a fresh id and a fully
// populated audit block stamped to now.
func NewArtifact(projectID string, t ArtifactType, schemaVersion, author string, data map[string]any) *Artifact {
	now := time.Now().UTC()
	return &Artifact{
		ID:            uuid.NewString(),
		ProjectID:     projectID,
		Type:          t,
		SchemaVersion: schemaVersion,
		Metadata: Metadata{
			CreatedBy:  author,
			CreatedAt:  now,
			ModifiedBy: author,
			ModifiedAt: now,
		},
		Data: data,
	}
}

// IsType reports whether the artifact carries the given payload type.
// Callers narrow with this before decoding Data.
func (a *Artifact) IsType(t ArtifactType) bool {
	return a != nil && a.Type == t
}

// Clone returns a deep copy of the artifact. Stores hand out clones so
// callers can never reach shared state.
func (a *Artifact) Clone() *Artifact {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Data = cloneMap(a.Data)
	return &cp
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
