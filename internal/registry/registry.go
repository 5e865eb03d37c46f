// Package registry maps each (artifact type, schema version) pair to its
// payload codec, validator and migration steps. Adding an artifact type
// means registering a TypeDef here; nothing else in the core changes.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"

	"coursecraft/internal/model"
)

// MigrateFunc upgrades a payload from one schema version to the next.
// Steps are pure: they never touch the envelope and never mutate their input.
type MigrateFunc func(data map[string]any) (map[string]any, error)

// Step is a single registered migration to the named next version.
type Step struct {
	To    string
	Apply MigrateFunc
}

// TypeDef describes one registered artifact type.
type TypeDef struct {
	Type           model.ArtifactType
	CurrentVersion string
	// Validate checks a current-version payload against its shape and
	// payload-specific invariants.
	Validate func(a *model.Artifact) error
	// Steps maps a from-version to the single next-version migration.
	Steps map[string]Step
}

// Registry holds the registered artifact types.
type Registry struct {
	defs map[model.ArtifactType]*TypeDef
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[model.ArtifactType]*TypeDef)}
}

// Default returns a registry with the built-in artifact types registered.
func Default() *Registry {
	r := New()
	r.Register(questionDef())
	r.Register(bankDef())
	return r
}

// Register adds or replaces a type definition.
func (r *Registry) Register(def *TypeDef) {
	r.defs[def.Type] = def
}

// Lookup returns the definition for an artifact type.
func (r *Registry) Lookup(t model.ArtifactType) (*TypeDef, bool) {
	def, ok := r.defs[t]
	return def, ok
}

// CurrentVersion returns the current schema version for an artifact type.
func (r *Registry) CurrentVersion(t model.ArtifactType) (string, error) {
	def, ok := r.defs[t]
	if !ok {
		return "", &ValidationError{ArtifactType: t, Reason: "type is not registered"}
	}
	return def.CurrentVersion, nil
}

// IsCurrent reports whether the artifact's schema version is the current
// one for its type.
func (r *Registry) IsCurrent(a *model.Artifact) bool {
	def, ok := r.defs[a.Type]
	return ok && a.SchemaVersion == def.CurrentVersion
}

// Validate checks the artifact envelope and, for current-version
// artifacts, the payload shape and its invariants. Failures are reported
// as *ValidationError so callers can tell malformed input from internal
// errors.
func (r *Registry) Validate(a *model.Artifact) error {
	if a == nil {
		return &ValidationError{Reason: "artifact is nil"}
	}
	def, ok := r.defs[a.Type]
	if !ok {
		return &ValidationError{ArtifactType: a.Type, Reason: "type is not registered"}
	}
	if a.ID == "" {
		return &ValidationError{ArtifactType: a.Type, Reason: "artifact has no id"}
	}
	if a.ProjectID == "" {
		return &ValidationError{ArtifactType: a.Type, Reason: "artifact has no project id"}
	}
	if a.Metadata.CreatedBy == "" || a.Metadata.CreatedAt.IsZero() ||
		a.Metadata.ModifiedBy == "" || a.Metadata.ModifiedAt.IsZero() {
		return &ValidationError{ArtifactType: a.Type, Reason: "artifact metadata is incomplete"}
	}
	if a.Data == nil {
		return &ValidationError{ArtifactType: a.Type, Reason: "artifact has no data"}
	}

	if a.SchemaVersion != def.CurrentVersion {
		// Older versions are valid at rest as long as a migration path
		// starts there; their payload shape is checked after migration.
		if _, known := def.Steps[a.SchemaVersion]; !known {
			return &ValidationError{
				ArtifactType: a.Type,
				Reason:       fmt.Sprintf("unknown schema version %q", a.SchemaVersion),
			}
		}
		return nil
	}

	if def.Validate != nil {
		return def.Validate(a)
	}
	return nil
}

// ValidationError reports a malformed artifact payload or a contract
// violation. It is recoverable and surfaced to the caller, never
// auto-corrected.
type ValidationError struct {
	ArtifactType model.ArtifactType
	Reason       string
}

func (e *ValidationError) Error() string {
	if e.ArtifactType == "" {
		return fmt.Sprintf("invalid artifact: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s artifact: %s", e.ArtifactType, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// EncodePayload converts a typed payload to the opaque map shape stored in
// an artifact envelope.
func EncodePayload(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return out, nil
}

func decodePayload(data map[string]any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// DecodeQuestion narrows a current-version quiz-question artifact to its
// typed payload.
func (r *Registry) DecodeQuestion(a *model.Artifact) (*model.QuizQuestion, error) {
	if err := r.requireCurrent(a, model.TypeQuizQuestion); err != nil {
		return nil, err
	}
	var q model.QuizQuestion
	if err := decodePayload(a.Data, &q); err != nil {
		return nil, &ValidationError{ArtifactType: a.Type, Reason: err.Error()}
	}
	return &q, nil
}

// DecodeBank narrows a current-version question-bank artifact to its typed
// payload.
func (r *Registry) DecodeBank(a *model.Artifact) (*model.QuestionBank, error) {
	if err := r.requireCurrent(a, model.TypeQuestionBank); err != nil {
		return nil, err
	}
	var b model.QuestionBank
	if err := decodePayload(a.Data, &b); err != nil {
		return nil, &ValidationError{ArtifactType: a.Type, Reason: err.Error()}
	}
	return &b, nil
}

func (r *Registry) requireCurrent(a *model.Artifact, want model.ArtifactType) error {
	if a == nil || !a.IsType(want) {
		return &ValidationError{ArtifactType: want, Reason: "artifact is not of this type"}
	}
	def, ok := r.defs[want]
	if !ok {
		return &ValidationError{ArtifactType: want, Reason: "type is not registered"}
	}
	if a.SchemaVersion != def.CurrentVersion {
		return &ValidationError{
			ArtifactType: want,
			Reason:       fmt.Sprintf("schema version %q is not current (%s)", a.SchemaVersion, def.CurrentVersion),
		}
	}
	return nil
}
