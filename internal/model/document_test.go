package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPlainText(t *testing.T) {
	t.Run("SingleLine", func(t *testing.T) {
		doc := FromPlainText("What is the capital of France?")
		require.Len(t, doc.Nodes, 1)
		assert.Equal(t, NodeParagraph, doc.Nodes[0].Kind)
		require.Len(t, doc.Nodes[0].Content, 1)
		assert.Equal(t, "What is the capital of France?", doc.Nodes[0].Content[0].Text)
	})

	t.Run("MultipleLines", func(t *testing.T) {
		doc := FromPlainText("first\nsecond\nthird")
		assert.Len(t, doc.Nodes, 3)
	})

	t.Run("EmptyString", func(t *testing.T) {
		// One paragraph holding an empty text run, not zero paragraphs.
		doc := FromPlainText("")
		require.Len(t, doc.Nodes, 1)
		assert.Equal(t, "", doc.Nodes[0].Content[0].Text)
	})
}

func TestPlainText(t *testing.T) {
	t.Run("RoundTripOfFlatText", func(t *testing.T) {
		doc := FromPlainText("line one\nline two")
		assert.Equal(t, "line one\nline two", doc.PlainText())
	})

	t.Run("MarksDiscarded", func(t *testing.T) {
		doc := Document{Nodes: []Node{
			{Kind: NodeParagraph, Content: []Node{
				{Kind: NodeText, Text: "plain "},
				{Kind: NodeText, Text: "bold", Marks: []Mark{{Kind: MarkBold}}},
			}},
		}}
		assert.Equal(t, "plain bold", doc.PlainText())
	})

	t.Run("ListFlattensToLines", func(t *testing.T) {
		doc := Document{Nodes: []Node{
			{Kind: NodeList, Content: []Node{
				{Kind: NodeListItem, Content: []Node{
					{Kind: NodeParagraph, Content: []Node{{Kind: NodeText, Text: "apple"}}},
				}},
				{Kind: NodeListItem, Content: []Node{
					{Kind: NodeParagraph, Content: []Node{{Kind: NodeText, Text: "banana"}}},
				}},
			}},
		}}
		// Structure is lost; only the line-per-block projection survives.
		assert.Equal(t, "apple\nbanana", doc.PlainText())
	})

	t.Run("HeadingIsItsOwnLine", func(t *testing.T) {
		doc := Document{Nodes: []Node{
			{Kind: NodeHeading, Content: []Node{{Kind: NodeText, Text: "Chapter 1"}}},
			{Kind: NodeParagraph, Content: []Node{{Kind: NodeText, Text: "The sea."}}},
		}}
		assert.Equal(t, "Chapter 1\nThe sea.", doc.PlainText())
	})
}

func TestValidateDocument(t *testing.T) {
	t.Run("ValidDocument", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(FromPlainText("hello")))
	})

	t.Run("TextNodeWithChildren", func(t *testing.T) {
		doc := Document{Nodes: []Node{
			{Kind: NodeParagraph, Content: []Node{
				{Kind: NodeText, Text: "x", Content: []Node{{Kind: NodeText, Text: "nested"}}},
			}},
		}}
		assert.Error(t, ValidateDocument(doc))
	})

	t.Run("LiteralTextOnContainerNode", func(t *testing.T) {
		// Text carried directly on a paragraph never reaches the
		// plain-text projection, so the document must not validate.
		doc := Document{Nodes: []Node{
			{Kind: NodeParagraph, Text: "hello"},
		}}
		assert.Error(t, ValidateDocument(doc))
		assert.Equal(t, "", doc.PlainText())
	})

	t.Run("MarksOnContainerNode", func(t *testing.T) {
		doc := Document{Nodes: []Node{
			{Kind: NodeParagraph, Marks: []Mark{{Kind: MarkBold}}, Content: []Node{
				{Kind: NodeText, Text: "x"},
			}},
		}}
		assert.Error(t, ValidateDocument(doc))
	})
}

func TestDocumentIsEmpty(t *testing.T) {
	assert.True(t, Document{}.IsEmpty())
	assert.True(t, FromPlainText("").IsEmpty())
	assert.True(t, FromPlainText("   ").IsEmpty())
	assert.False(t, FromPlainText("x").IsEmpty())
}
