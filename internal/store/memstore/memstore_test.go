package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecraft/internal/model"
	"coursecraft/internal/store"
)

func newProject(t *testing.T, s *Store, name string) *model.Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), &model.Project{Name: name, OwnerID: "alice"})
	require.NoError(t, err)
	return p
}

func newQuestionArtifact(projectID string) *model.Artifact {
	return model.NewArtifact(projectID, model.TypeQuizQuestion, "3", "alice", map[string]any{
		"questionForm": "true_false",
	})
}

func TestProjectCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	t.Run("CreateAssignsIDAndTimestamps", func(t *testing.T) {
		p := newProject(t, s, "Biology 101")
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	})

	t.Run("GetMissingReturnsNilNil", func(t *testing.T) {
		p, err := s.GetProject(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("UpdatePartialFields", func(t *testing.T) {
		p := newProject(t, s, "Chemistry")
		name := "Chemistry 201"
		got, err := s.UpdateProject(ctx, p.ID, store.ProjectUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Chemistry 201", got.Name)
		assert.Equal(t, p.Description, got.Description)
	})

	t.Run("UpdateMissingReturnsNotFound", func(t *testing.T) {
		_, err := s.UpdateProject(ctx, "nope", store.ProjectUpdate{})
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("ReturnedCopiesAreDetached", func(t *testing.T) {
		p := newProject(t, s, "Physics")
		p.Name = "mutated"
		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Physics", got.Name)
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := newProject(t, s, "Biology 101")
	other := newProject(t, s, "Untouched")

	a := newQuestionArtifact(p.ID)
	require.NoError(t, s.SaveArtifact(ctx, a))
	keep := newQuestionArtifact(other.ID)
	require.NoError(t, s.SaveArtifact(ctx, keep))

	require.NoError(t, s.SaveLink(ctx, &model.Link{
		ProjectID:    p.ID,
		SourceID:     a.ID,
		TargetID:     a.ID,
		Relationship: model.RelContains,
		CreatedBy:    "alice",
	}))

	require.NoError(t, s.DeleteProject(ctx, p.ID))

	got, err := s.GetArtifact(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	links, err := s.ListLinks(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	// The other project's artifact survives.
	got, err = s.GetArtifact(ctx, keep.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	assert.True(t, store.IsNotFound(s.DeleteProject(ctx, p.ID)))
}

func TestArtifactSave(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := newProject(t, s, "Biology 101")

	t.Run("UpsertPreservesCreationMetadata", func(t *testing.T) {
		a := newQuestionArtifact(p.ID)
		require.NoError(t, s.SaveArtifact(ctx, a))

		first, err := s.GetArtifact(ctx, a.ID)
		require.NoError(t, err)

		// Second save with tampered creation metadata.
		update := first.Clone()
		update.Metadata.CreatedBy = "mallory"
		update.Metadata.CreatedAt = time.Now().Add(time.Hour)
		update.Metadata.ModifiedBy = "bob"
		require.NoError(t, s.SaveArtifact(ctx, update))

		got, err := s.GetArtifact(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Metadata.CreatedBy, got.Metadata.CreatedBy)
		assert.Equal(t, first.Metadata.CreatedAt, got.Metadata.CreatedAt)
		assert.Equal(t, "bob", got.Metadata.ModifiedBy)
		assert.True(t, got.Metadata.ModifiedAt.After(first.Metadata.ModifiedAt) ||
			got.Metadata.ModifiedAt.Equal(first.Metadata.ModifiedAt))
	})

	t.Run("ListFiltersByType", func(t *testing.T) {
		bank := model.NewArtifact(p.ID, model.TypeQuestionBank, "2", "alice", map[string]any{"title": "Unit 1"})
		require.NoError(t, s.SaveArtifact(ctx, bank))

		banks, err := s.ListArtifacts(ctx, p.ID, model.TypeQuestionBank)
		require.NoError(t, err)
		require.Len(t, banks, 1)
		assert.Equal(t, bank.ID, banks[0].ID)

		all, err := s.ListArtifacts(ctx, p.ID, "")
		require.NoError(t, err)
		assert.Greater(t, len(all), 1)
	})

	t.Run("DeleteDoesNotTouchLinks", func(t *testing.T) {
		a := newQuestionArtifact(p.ID)
		require.NoError(t, s.SaveArtifact(ctx, a))
		require.NoError(t, s.SaveLink(ctx, &model.Link{
			ProjectID:    p.ID,
			SourceID:     "bank-1",
			TargetID:     a.ID,
			Relationship: model.RelContains,
			CreatedBy:    "alice",
		}))

		require.NoError(t, s.DeleteArtifact(ctx, a.ID))

		links, err := s.ListLinks(ctx, p.ID)
		require.NoError(t, err)
		// The dangling link stays; sweeping it is the caller's job.
		assert.NotEmpty(t, links)
	})

	t.Run("DeleteMissingReturnsNotFound", func(t *testing.T) {
		assert.True(t, store.IsNotFound(s.DeleteArtifact(ctx, "nope")))
	})
}

func TestLinks(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := newProject(t, s, "Biology 101")

	l := &model.Link{
		ProjectID:    p.ID,
		SourceID:     "bank-1",
		TargetID:     "q-1",
		Relationship: model.RelContains,
		CreatedBy:    "alice",
	}
	require.NoError(t, s.SaveLink(ctx, l))

	links, err := s.ListLinks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.NotEmpty(t, links[0].ID)
	assert.False(t, links[0].CreatedAt.IsZero())

	require.NoError(t, s.DeleteLink(ctx, links[0].ID))
	assert.True(t, store.IsNotFound(s.DeleteLink(ctx, links[0].ID)))
}
