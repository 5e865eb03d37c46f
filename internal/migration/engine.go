// Package migration upgrades artifact payloads to the current schema
// version for their type. Migrations run on read: every storage read path
// passes artifacts through the engine before a caller sees them, and
// write paths only accept already-current artifacts, so at-rest data is
// always explicit about its actual version.
package migration

import (
	"errors"
	"fmt"

	"coursecraft/internal/model"
	"coursecraft/internal/registry"
)

// Engine walks the registered per-type migration steps.
type Engine struct {
	reg *registry.Registry
}

// NewEngine creates a migration engine over the given type registry.
func NewEngine(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// ResolveToCurrent returns an artifact whose payload is at the current
// schema version for its type, applying the single next-version step
// repeatedly. It never skips a version: a gap in the registered steps
// fails fast with a *MigrationError. Calling it on an already-current
// artifact is a no-op that returns the artifact unchanged.
func (e *Engine) ResolveToCurrent(a *model.Artifact) (*model.Artifact, error) {
	def, ok := e.reg.Lookup(a.Type)
	if !ok {
		return nil, &registry.ValidationError{ArtifactType: a.Type, Reason: "type is not registered"}
	}
	if a.SchemaVersion == def.CurrentVersion {
		return a, nil
	}

	version := a.SchemaVersion
	data := a.Clone().Data

	// Bounded by the number of registered steps; a malformed step table
	// cannot loop forever.
	for i := 0; i <= len(def.Steps); i++ {
		if version == def.CurrentVersion {
			out := a.Clone()
			out.SchemaVersion = version
			out.Data = data
			return out, nil
		}
		step, ok := def.Steps[version]
		if !ok {
			return nil, &MigrationError{
				ArtifactType: a.Type,
				From:         a.SchemaVersion,
				Stuck:        version,
				Want:         def.CurrentVersion,
			}
		}
		next, err := step.Apply(data)
		if err != nil {
			return nil, fmt.Errorf("migrate %s from version %s to %s: %w", a.Type, version, step.To, err)
		}
		data = next
		version = step.To
	}

	return nil, &MigrationError{
		ArtifactType: a.Type,
		From:         a.SchemaVersion,
		Stuck:        version,
		Want:         def.CurrentVersion,
	}
}

// MigrationError reports an unbridgeable version gap. It is fatal for the
// artifact being read: the read fails rather than returning stale or
// guessed data.
type MigrationError struct {
	ArtifactType model.ArtifactType
	From         string // version the artifact was stored at
	Stuck        string // version with no registered step
	Want         string // current version for the type
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("no migration registered for %s from version %q (stored at %q, current is %q)",
		e.ArtifactType, e.Stuck, e.From, e.Want)
}

// IsMigration reports whether err is (or wraps) a MigrationError.
func IsMigration(err error) bool {
	var me *MigrationError
	return errors.As(err, &me)
}
