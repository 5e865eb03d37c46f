package interchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Run("StandardLayout", func(t *testing.T) {
		in := strings.Join([]string{
			"Type,Question,Answer1,Answer2,Answer3,Answer4,CorrectAnswer,CorrectFeedback,IncorrectFeedback",
			`Multiple Choice,"Largest ocean?",Pacific,Atlantic,Indian,Arctic,1,Correct.,Nope.`,
			"True/False,Coral is an animal.,True,False,,,1,,",
		}, "\n")

		rows, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Multiple Choice", rows[0].Type)
		assert.Equal(t, "Largest ocean?", rows[0].Question)
		assert.Equal(t, []string{"Pacific", "Atlantic", "Indian", "Arctic"}, rows[0].Answers)
		assert.Equal(t, "1", rows[0].CorrectAnswer)
		assert.Equal(t, []string{"True", "False", "", ""}, rows[1].Answers)
	})

	t.Run("ExtraAnswerColumns", func(t *testing.T) {
		in := strings.Join([]string{
			"Type,Question,Answer1,Answer2,Answer3,Answer4,Answer5,Answer6,CorrectAnswer,CorrectFeedback,IncorrectFeedback",
			"Multiple Response,Pick primes.,2,3,4,5,6,7,\"1,2,4,6\",,",
		}, "\n")

		rows, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Len(t, rows[0].Answers, 6)
		assert.Equal(t, "1,2,4,6", rows[0].CorrectAnswer)
	})

	t.Run("ReorderedHeader", func(t *testing.T) {
		in := strings.Join([]string{
			"Question,Type,CorrectAnswer,Answer2,Answer1,CorrectFeedback,IncorrectFeedback",
			"Coral is an animal.,True/False,1,False,True,,",
		}, "\n")

		rows, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		// AnswerN columns resolve by number, not file position.
		assert.Equal(t, []string{"True", "False"}, rows[0].Answers)
	})

	t.Run("ShortRowsPaddedWithBlanks", func(t *testing.T) {
		in := strings.Join([]string{
			"Type,Question,Answer1,Answer2,Answer3,Answer4,CorrectAnswer,CorrectFeedback,IncorrectFeedback",
			"True/False,Short row.,True,False",
		}, "\n")

		rows, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"True", "False", "", ""}, rows[0].Answers)
		assert.Equal(t, "", rows[0].CorrectAnswer)
	})

	t.Run("MissingRequiredColumn", func(t *testing.T) {
		in := "Type,Question,Answer1,Answer2,CorrectFeedback,IncorrectFeedback\nx,y,a,b,,"
		_, err := ReadCSV(strings.NewReader(in))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CorrectAnswer")
	})

	t.Run("NoAnswerColumns", func(t *testing.T) {
		in := "Type,Question,CorrectAnswer,CorrectFeedback,IncorrectFeedback\n"
		_, err := ReadCSV(strings.NewReader(in))
		assert.Error(t, err)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	t.Run("CanonicalHeaderAtStandardWidth", func(t *testing.T) {
		rows := []Row{{
			Type:          LabelTrueFalse,
			Question:      "Coral is an animal.",
			Answers:       []string{"True", "False"},
			CorrectAnswer: "1",
		}}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, rows))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t,
			"Type,Question,Answer1,Answer2,Answer3,Answer4,CorrectAnswer,CorrectFeedback,IncorrectFeedback",
			lines[0])
		assert.Equal(t, "True/False,Coral is an animal.,True,False,,,1,,", lines[1])
	})

	t.Run("WidensToLargestRow", func(t *testing.T) {
		rows := []Row{
			{Type: LabelMultipleResponse, Question: "Six options.",
				Answers: []string{"a", "b", "c", "d", "e", "f"}, CorrectAnswer: "1"},
			{Type: LabelTrueFalse, Question: "Two options.",
				Answers: []string{"True", "False"}, CorrectAnswer: "2"},
		}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, rows))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		assert.Contains(t, lines[0], "Answer6")
		// The short row is padded out to the shared width.
		assert.Equal(t, "True/False,Two options.,True,False,,,,,2,,", lines[2])
	})

	t.Run("RoundTripThroughFraming", func(t *testing.T) {
		in := []Row{{
			Type:              LabelMultipleChoice,
			Question:          `He said "go on", then stopped.`,
			Answers:           []string{"A, with a comma", "B", "C", "D"},
			CorrectAnswer:     "1",
			CorrectFeedback:   "multi\nline",
			IncorrectFeedback: "",
		}}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, in))

		out, err := ReadCSV(&buf)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, in[0], out[0])
	})
}
