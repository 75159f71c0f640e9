// Copyright 2025 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package djot

import "fmt"

// A Document is the result of parsing a single markup document.
type Document struct {
	// Source is the normalized text of the document.
	// All spans in the tree are offsets into Source.
	// Line endings in Source are always "\n".
	Source []byte
	// Root is the tree's [DocumentKind] node.
	Root *Node
}

// A Node is an element of a parsed document.
// A node's span contains the spans of all its children.
type Node struct {
	Kind     Kind
	Span     Span
	Attrs    *Attrs
	Children []*Node
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on nil returns 0.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i'th child of the node.
func (n *Node) Child(i int) *Node {
	return n.Children[i]
}

// Text returns the source text covered by the node's span.
// Text returns the empty string for a nil node.
func (n *Node) Text(source []byte) string {
	if n == nil {
		return ""
	}
	return n.Span.Text(source)
}

// Attrs is the set of extended attributes attached to a node.
type Attrs struct {
	ID      string
	Classes []string
	// Pairs is the list of key/value attributes in source order.
	Pairs []Attr
}

// Attr is a single key/value attribute.
type Attr struct {
	Key   string
	Value string
}

// Kind identifies the construct a [Node] represents.
// The set of kinds is closed:
// the concrete type of a Kind is always one of the *Kind types in this package.
// Kinds with a payload (like [LinkKind]) carry only the data that construct needs.
type Kind interface {
	String() string
	isKind()
}

// Block kinds.
type (
	// DocumentKind is the root of a parsed document.
	DocumentKind struct{}
	// ParagraphKind is a run of text lines.
	ParagraphKind struct{}
	// HeadingKind is a section heading.
	HeadingKind struct {
		Level int
	}
	// BlockQuoteKind is a sequence of lines introduced by ">".
	BlockQuoteKind struct{}
	// ListKind is a bullet or ordered list.
	ListKind struct {
		Style ListStyle
	}
	ListItemKind struct{}
	// CodeBlockKind is a fenced code block or a raw block.
	CodeBlockKind struct {
		Fence     int
		Lang      string
		RawFormat string
	}
	DivKind   struct{}
	TableKind struct {
		Aligns []Align
	}
	ThematicBreakKind struct{}
	// AttributesKind is a standalone attribute line
	// that applies to the following block.
	AttributesKind struct{}
)

// Inline kinds.
type (
	PlainTextKind struct{}
	EmphKind      struct{}
	StrongKind    struct{}
	CodeKind      struct{}
	VerbatimKind  struct {
		Format string
	}
	// LinkKind is a hyperlink.
	// Destination and Title are [NullSpan] if absent.
	LinkKind struct {
		Destination Span
		Title       Span
	}
	// ImageKind is an embedded image.
	// Destination and Title are [NullSpan] if absent.
	ImageKind struct {
		Destination Span
		Title       Span
	}
	SubKind         struct{}
	SupKind         struct{}
	InsertKind      struct{}
	DeleteKind      struct{}
	MarkKind        struct{}
	MathInlineKind  struct{}
	MathDisplayKind struct{}
)

func (DocumentKind) isKind() {}
func (ParagraphKind) isKind() {}
func (HeadingKind) isKind() {}
func (BlockQuoteKind) isKind() {}
func (ListKind) isKind() {}
func (ListItemKind) isKind() {}
func (CodeBlockKind) isKind() {}
func (DivKind) isKind() {}
func (TableKind) isKind() {}
func (ThematicBreakKind) isKind() {}
func (AttributesKind) isKind() {}
func (PlainTextKind) isKind() {}
func (EmphKind) isKind() {}
func (StrongKind) isKind() {}
func (CodeKind) isKind() {}
func (VerbatimKind) isKind() {}
func (LinkKind) isKind() {}
func (ImageKind) isKind() {}
func (SubKind) isKind() {}
func (SupKind) isKind() {}
func (InsertKind) isKind() {}
func (DeleteKind) isKind() {}
func (MarkKind) isKind() {}
func (MathInlineKind) isKind() {}
func (MathDisplayKind) isKind() {}

func (DocumentKind) String() string { return "Document" }
func (ParagraphKind) String() string { return "Paragraph" }
func (k HeadingKind) String() string { return fmt.Sprintf("Heading(%d)", k.Level) }
func (BlockQuoteKind) String() string { return "BlockQuote" }
func (k ListKind) String() string { return "List(" + k.Style.String() + ")" }
func (ListItemKind) String() string { return "ListItem" }
func (k CodeBlockKind) String() string {
	return fmt.Sprintf("CodeBlock(fence=%d, lang=%q, raw=%q)", k.Fence, k.Lang, k.RawFormat)
}
func (DivKind) String() string { return "Div" }
func (k TableKind) String() string { return fmt.Sprintf("Table%v", k.Aligns) }
func (ThematicBreakKind) String() string { return "ThematicBreak" }
func (AttributesKind) String() string { return "Attributes" }
func (PlainTextKind) String() string { return "PlainText" }
func (EmphKind) String() string { return "Emph" }
func (StrongKind) String() string { return "Strong" }
func (CodeKind) String() string { return "Code" }
func (k VerbatimKind) String() string { return fmt.Sprintf("Verbatim(%q)", k.Format) }
func (k LinkKind) String() string {
	return fmt.Sprintf("Link(dest=%v, title=%v)", k.Destination, k.Title)
}
func (k ImageKind) String() string {
	return fmt.Sprintf("Image(dest=%v, title=%v)", k.Destination, k.Title)
}
func (SubKind) String() string { return "Sub" }
func (SupKind) String() string { return "Sup" }
func (InsertKind) String() string { return "Insert" }
func (DeleteKind) String() string { return "Delete" }
func (MarkKind) String() string { return "Mark" }
func (MathInlineKind) String() string { return "MathInline" }
func (MathDisplayKind) String() string { return "MathDisplay" }

// ListStyle is an enumeration of list marker styles.
type ListStyle int8

const (
	BulletList ListStyle = iota
	OrderedList
)

func (s ListStyle) String() string {
	switch s {
	case BulletList:
		return "Bullet"
	case OrderedList:
		return "Ordered"
	default:
		return fmt.Sprintf("ListStyle(%d)", int8(s))
	}
}

// Align is an enumeration of table column alignments.
type Align int8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignNone:
		return "None"
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return fmt.Sprintf("Align(%d)", int8(a))
	}
}
