package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecraft/internal/model"
)

func validQuestion() *model.QuizQuestion {
	return &model.QuizQuestion{
		QuestionForm: model.FormSingleCorrect,
		Prompt:       model.FromPlainText("What lives in a tide pool?"),
		Answers: []model.Answer{
			{ID: "a1", Text: model.FromPlainText("Anemones"), IsCorrect: true},
			{ID: "a2", Text: model.FromPlainText("Eagles")},
		},
	}
}

func questionArtifact(t *testing.T, q *model.QuizQuestion) *model.Artifact {
	t.Helper()
	data, err := EncodePayload(q)
	require.NoError(t, err)
	return model.NewArtifact("proj-1", model.TypeQuizQuestion, QuestionVersion, "alice", data)
}

func TestValidate(t *testing.T) {
	reg := Default()

	t.Run("ValidQuestion", func(t *testing.T) {
		assert.NoError(t, reg.Validate(questionArtifact(t, validQuestion())))
	})

	t.Run("UnregisteredType", func(t *testing.T) {
		a := model.NewArtifact("proj-1", model.ArtifactType("video"), "1", "alice", map[string]any{})
		err := reg.Validate(a)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("MissingEnvelopeFields", func(t *testing.T) {
		a := questionArtifact(t, validQuestion())
		a.ProjectID = ""
		assert.True(t, IsValidation(reg.Validate(a)))

		a = questionArtifact(t, validQuestion())
		a.Metadata.CreatedBy = ""
		assert.True(t, IsValidation(reg.Validate(a)))

		a = questionArtifact(t, validQuestion())
		a.Metadata.ModifiedBy = ""
		assert.True(t, IsValidation(reg.Validate(a)))

		a = questionArtifact(t, validQuestion())
		a.Metadata.ModifiedAt = time.Time{}
		assert.True(t, IsValidation(reg.Validate(a)))

		a = questionArtifact(t, validQuestion())
		a.Data = nil
		assert.True(t, IsValidation(reg.Validate(a)))
	})

	t.Run("EmptyPromptRejected", func(t *testing.T) {
		q := validQuestion()
		q.Prompt = model.Document{}
		err := reg.Validate(questionArtifact(t, q))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prompt")
	})

	t.Run("AnswerWithoutIDRejected", func(t *testing.T) {
		q := validQuestion()
		q.Answers[0].ID = ""
		assert.Error(t, reg.Validate(questionArtifact(t, q)))
	})

	t.Run("OlderVersionWithMigrationPathIsValidAtRest", func(t *testing.T) {
		a := questionArtifact(t, validQuestion())
		a.SchemaVersion = "1"
		a.Data = map[string]any{"prompt": "old"}
		assert.NoError(t, reg.Validate(a))
	})

	t.Run("UnknownVersionRejected", func(t *testing.T) {
		a := questionArtifact(t, validQuestion())
		a.SchemaVersion = "99"
		err := reg.Validate(a)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestDecodeQuestion(t *testing.T) {
	reg := Default()

	t.Run("RoundTrip", func(t *testing.T) {
		orig := validQuestion()
		a := questionArtifact(t, orig)

		got, err := reg.DecodeQuestion(a)
		require.NoError(t, err)
		assert.Equal(t, orig.QuestionForm, got.QuestionForm)
		assert.Equal(t, "What lives in a tide pool?", got.Prompt.PlainText())
		require.Len(t, got.Answers, 2)
		assert.True(t, got.Answers[0].IsCorrect)
	})

	t.Run("WrongType", func(t *testing.T) {
		a := model.NewArtifact("proj-1", model.TypeQuestionBank, BankVersion, "alice", map[string]any{})
		_, err := reg.DecodeQuestion(a)
		assert.True(t, IsValidation(err))
	})

	t.Run("StaleVersion", func(t *testing.T) {
		a := questionArtifact(t, validQuestion())
		a.SchemaVersion = "2"
		_, err := reg.DecodeQuestion(a)
		assert.True(t, IsValidation(err))
	})
}

func TestQuestionMigrations(t *testing.T) {
	def := questionDef()

	v1 := map[string]any{
		"questionForm": "single_correct",
		"prompt":       "Name the largest ocean.",
		"answers": []any{
			map[string]any{"text": "Pacific", "isCorrect": true},
			map[string]any{"text": "Atlantic", "isCorrect": false},
		},
		"correctFeedback":   "Right!",
		"incorrectFeedback": "Not quite.",
		"points":            float64(10),
	}

	t.Run("V1ToV2LiftsProseToDocuments", func(t *testing.T) {
		v2, err := def.Steps["1"].Apply(v1)
		require.NoError(t, err)

		prompt, ok := v2["prompt"].(map[string]any)
		require.True(t, ok, "prompt should be a document map")
		assert.Equal(t, "doc", prompt["kind"])

		_, hasOld := v2["correctFeedback"]
		assert.False(t, hasOld)
		fb, ok := v2["feedback"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fb, "correct")
		assert.Contains(t, fb, "incorrect")

		// Input untouched.
		assert.Equal(t, "Name the largest ocean.", v1["prompt"])
	})

	t.Run("V2ToV3AssignsAnswerIDsAndGathersSettings", func(t *testing.T) {
		v2, err := def.Steps["1"].Apply(v1)
		require.NoError(t, err)
		v3, err := def.Steps["2"].Apply(v2)
		require.NoError(t, err)

		answers := v3["answers"].([]any)
		for _, raw := range answers {
			ans := raw.(map[string]any)
			assert.NotEmpty(t, ans["id"])
		}

		settings, ok := v3["settings"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(10), settings["points"])
		_, loose := v3["points"]
		assert.False(t, loose)
	})

	t.Run("MigratedPayloadPassesCurrentValidation", func(t *testing.T) {
		v2, err := def.Steps["1"].Apply(v1)
		require.NoError(t, err)
		v3, err := def.Steps["2"].Apply(v2)
		require.NoError(t, err)

		a := model.NewArtifact("proj-1", model.TypeQuizQuestion, QuestionVersion, "alice", v3)
		assert.NoError(t, Default().Validate(a))
	})

	t.Run("MalformedV1Rejected", func(t *testing.T) {
		_, err := def.Steps["1"].Apply(map[string]any{"prompt": 42})
		assert.Error(t, err)
	})
}

func TestBankMigration(t *testing.T) {
	def := bankDef()

	v1 := map[string]any{
		"title": "Unit 1",
		"questions": []any{
			map[string]any{"id": "q-1", "prompt": "embedded"},
			map[string]any{"id": "q-2", "prompt": "embedded"},
		},
	}

	t.Run("V1ToV2ReplacesEmbeddedQuestionsWithIDs", func(t *testing.T) {
		v2, err := def.Steps["1"].Apply(v1)
		require.NoError(t, err)

		assert.Equal(t, []any{"q-1", "q-2"}, v2["questionIds"])
		_, embedded := v2["questions"]
		assert.False(t, embedded)
		assert.Equal(t, map[string]any{}, v2["settings"])

		a := model.NewArtifact("proj-1", model.TypeQuestionBank, BankVersion, "alice", v2)
		assert.NoError(t, Default().Validate(a))
	})

	t.Run("EmbeddedQuestionWithoutIDRejected", func(t *testing.T) {
		bad := map[string]any{
			"title":     "Unit 1",
			"questions": []any{map[string]any{"prompt": "no id"}},
		}
		_, err := def.Steps["1"].Apply(bad)
		assert.Error(t, err)
	})
}
