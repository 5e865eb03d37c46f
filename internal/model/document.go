package model

import (
	"errors"
	"strings"
)

var (
	errTextNodeChildren = errors.New("text node must not have children")
	errMarksOnContainer = errors.New("marks apply only to text nodes")
	errTextOnContainer  = errors.New("only text nodes carry literal text")
	errEmptyNode        = errors.New("node has neither text nor content")
)

// NodeKind identifies the structural role of a document node
type NodeKind string

const (
	NodeDoc       NodeKind = "doc"
	NodeParagraph NodeKind = "paragraph"
	NodeHeading   NodeKind = "heading"
	NodeList      NodeKind = "list"
	NodeListItem  NodeKind = "list-item"
	NodeText      NodeKind = "text"
)

// MarkKind identifies an inline formatting mark
type MarkKind string

const (
	MarkBold   MarkKind = "bold"
	MarkItalic MarkKind = "italic"
	MarkLink   MarkKind = "link"
)

// Mark is inline formatting applied to a text run (bold, italic, link, ...)
type Mark struct {
	Kind  MarkKind          `json:"kind" bson:"kind"`
	Attrs map[string]string `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Node is one node of the rich-text tree. A node carries either literal
// text (text kind, terminal) or child nodes, never neither. Marks apply
// only to text nodes.
type Node struct {
	Kind    NodeKind       `json:"kind" bson:"kind"`
	Text    string         `json:"text,omitempty" bson:"text,omitempty"`
	Content []Node         `json:"content,omitempty" bson:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty" bson:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Document is the rich-text tree used for all prose fields (prompts,
// answer text, feedback). Documents are value objects: every edit builds
// a new Document, the model exposes no mutators.
type Document struct {
	Kind  NodeKind `json:"kind" bson:"kind"`
	Nodes []Node   `json:"nodes" bson:"nodes"`
}

// NewDocument returns an empty document.
func NewDocument() Document {
	return Document{Kind: NodeDoc}
}

// FromPlainText builds a document with one paragraph per input line, each
// line a single unformatted text run.
//
// Note: FromPlainText and PlainText are not mutual inverses. Projecting a
// document to plain text discards all marks and any non-paragraph block
// structure (lists, headings), so FromPlainText(d.PlainText()) keeps only
// the text. This is the accepted lossy-conversion policy of the
// interchange boundary, not a defect.
func FromPlainText(text string) Document {
	doc := NewDocument()
	for _, line := range strings.Split(text, "\n") {
		doc.Nodes = append(doc.Nodes, Node{
			Kind:    NodeParagraph,
			Content: []Node{{Kind: NodeText, Text: line}},
		})
	}
	return doc
}

// PlainText projects the document to plain text: depth-first concatenation
// of all text runs, block-level nodes separated by a single line break,
// marks discarded. See the lossy-conversion note on FromPlainText.
func (d Document) PlainText() string {
	var lines []string
	for _, n := range d.Nodes {
		lines = append(lines, n.lines()...)
	}
	return strings.Join(lines, "\n")
}

// IsEmpty reports whether the document projects to no text at all.
func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.PlainText()) == ""
}

// lines flattens a block node into its plain-text lines. Inline children
// concatenate onto the current line; nested block children start new ones.
func (n Node) lines() []string {
	if n.Kind == NodeText {
		return []string{n.Text}
	}

	var out []string
	var cur strings.Builder
	flushed := false

	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
		flushed = true
	}

	for _, c := range n.Content {
		if c.isBlock() {
			if cur.Len() > 0 {
				flush()
			}
			out = append(out, c.lines()...)
			flushed = true
			continue
		}
		cur.WriteString(c.inlineText())
	}

	if cur.Len() > 0 || !flushed {
		flush()
	}
	return out
}

// inlineText concatenates the text runs under an inline node.
func (n Node) inlineText() string {
	if n.Kind == NodeText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Content {
		b.WriteString(c.inlineText())
	}
	return b.String()
}

func (n Node) isBlock() bool {
	switch n.Kind {
	case NodeParagraph, NodeHeading, NodeList, NodeListItem:
		return true
	}
	return false
}

// ValidateDocument checks structural validity: text nodes carry no
// children and only text nodes carry marks or literal text; every other
// node carries children.
func ValidateDocument(d Document) error {
	for _, n := range d.Nodes {
		if err := validateNode(n); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n Node) error {
	if n.Kind == NodeText {
		if len(n.Content) != 0 {
			return errTextNodeChildren
		}
		return nil
	}
	if len(n.Marks) != 0 {
		return errMarksOnContainer
	}
	// Literal text on a container would be invisible to the plain-text
	// projection, which only descends into Content for non-text kinds.
	if n.Text != "" {
		return errTextOnContainer
	}
	if len(n.Content) == 0 {
		return errEmptyNode
	}
	for _, c := range n.Content {
		if err := validateNode(c); err != nil {
			return err
		}
	}
	return nil
}
