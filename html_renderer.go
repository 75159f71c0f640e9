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

import (
	"fmt"
	"io"

	"golang.org/x/net/html/atom"
)

// An HTMLRenderer converts a parsed document tree into HTML.
// The zero value renders with default options.
//
// # Security considerations
//
// By default, the characters &, <, > and " are escaped
// in text content and attribute values,
// so the output only contains elements the renderer creates itself.
// Setting RawText disables escaping:
// source text is then copied into the output as-is,
// which permits arbitrary HTML and should only be used with trusted inputs.
type HTMLRenderer struct {
	// If RawText is true, text and attribute values are written
	// without HTML escaping.
	RawText bool
	// BlockSeparator is written between consecutive children
	// of a [DocumentKind] node.
	BlockSeparator string
}

// RenderHTML writes the document to w as HTML
// using the default options for [HTMLRenderer].
func RenderHTML(w io.Writer, doc *Document) error {
	return new(HTMLRenderer).Render(w, doc.Source, doc.Root)
}

// ToHTML returns the HTML for node
// using the default options for [HTMLRenderer].
// source must be the buffer the node's spans refer to,
// normally [Document.Source].
func ToHTML(source []byte, node *Node) string {
	return string(new(HTMLRenderer).AppendHTML(nil, source, node))
}

// Render writes the HTML for node to w.
// It returns the first error encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, source []byte, node *Node) error {
	if _, err := w.Write(r.AppendHTML(nil, source, node)); err != nil {
		return fmt.Errorf("render markup to html: %w", err)
	}
	return nil
}

// AppendHTML appends the rendered HTML of node to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendHTML(dst []byte, source []byte, node *Node) []byte {
	state := &renderState{
		HTMLRenderer: r,
		source:       source,
		dst:          dst,
	}
	state.node(node)
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	source []byte
	dst    []byte
}

func (r *renderState) node(n *Node) {
	if n == nil {
		return
	}
	switch k := n.Kind.(type) {
	case DocumentKind:
		for i, c := range n.Children {
			if i > 0 {
				r.dst = append(r.dst, r.BlockSeparator...)
			}
			r.node(c)
		}
	case ParagraphKind:
		r.openTag(atom.P, n.Attrs)
		r.children(n)
		r.closeTag(atom.P)
	case PlainTextKind:
		r.text(n.Span)
	case EmphKind:
		r.wrap(atom.Em, n)
	case StrongKind:
		r.wrap(atom.Strong, n)
	case MarkKind:
		r.wrap(atom.Mark, n)
	case InsertKind:
		r.wrap(atom.Ins, n)
	case DeleteKind:
		r.wrap(atom.Del, n)
	case SubKind:
		r.wrap(atom.Sub, n)
	case SupKind:
		r.wrap(atom.Sup, n)
	case CodeKind:
		r.openTag(atom.Code, n.Attrs)
		r.text(n.Span)
		r.closeTag(atom.Code)
	case LinkKind:
		r.openTagAttr(atom.A, n.Attrs)
		r.attr("href", k.Destination)
		r.dst = append(r.dst, '>')
		r.children(n)
		r.closeTag(atom.A)
	case ImageKind:
		r.dst = append(r.dst, '<')
		r.dst = append(r.dst, atom.Img.String()...)
		r.dst = append(r.dst, ` alt="`...)
		for _, c := range n.Children {
			r.text(c.Span)
		}
		r.dst = append(r.dst, '"')
		r.attr("src", k.Destination)
		r.attrs(n.Attrs, "")
		r.dst = append(r.dst, '>')
	case MathInlineKind:
		r.math(n, "math inline", `\(`, `\)`)
	case MathDisplayKind:
		r.math(n, "math display", `\[`, `\]`)
	default:
		r.children(n)
	}
}

func (r *renderState) children(n *Node) {
	for _, c := range n.Children {
		r.node(c)
	}
}

// contents renders the node's children,
// or the node's own span text if it has none.
func (r *renderState) contents(n *Node) {
	if len(n.Children) == 0 {
		r.text(n.Span)
		return
	}
	r.children(n)
}

func (r *renderState) wrap(name atom.Atom, n *Node) {
	r.openTag(name, n.Attrs)
	r.contents(n)
	r.closeTag(name)
}

func (r *renderState) math(n *Node, class, open, close string) {
	r.openTagAttr(atom.Span, n.Attrs)
	r.dst = append(r.dst, ` class="`...)
	r.dst = append(r.dst, class...)
	if n.Attrs != nil {
		for _, c := range n.Attrs.Classes {
			r.dst = append(r.dst, ' ')
			r.attrText([]byte(c))
		}
	}
	r.dst = append(r.dst, `">`...)
	r.dst = append(r.dst, open...)
	r.contents(n)
	r.dst = append(r.dst, close...)
	r.closeTag(atom.Span)
}

// openTagAttr writes the start of a start tag and the node's attributes,
// leaving the tag open for more attributes.
// Classes are omitted for span elements
// since [*renderState.math] merges them with its own.
func (r *renderState) openTagAttr(name atom.Atom, attrs *Attrs) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	skipClasses := ""
	if name == atom.Span {
		skipClasses = "class"
	}
	r.attrs(attrs, skipClasses)
}

func (r *renderState) openTag(name atom.Atom, attrs *Attrs) {
	r.openTagAttr(name, attrs)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

// attrs writes the id, class and key/value attributes in attrs.
// If skip is "class", classes are not written.
func (r *renderState) attrs(attrs *Attrs, skip string) {
	if attrs == nil {
		return
	}
	if attrs.ID != "" {
		r.dst = append(r.dst, ` id="`...)
		r.attrText([]byte(attrs.ID))
		r.dst = append(r.dst, '"')
	}
	if skip != "class" && len(attrs.Classes) > 0 {
		r.dst = append(r.dst, ` class="`...)
		for i, c := range attrs.Classes {
			if i > 0 {
				r.dst = append(r.dst, ' ')
			}
			r.attrText([]byte(c))
		}
		r.dst = append(r.dst, '"')
	}
	for _, a := range attrs.Pairs {
		r.dst = append(r.dst, ' ')
		r.dst = append(r.dst, a.Key...)
		r.dst = append(r.dst, `="`...)
		r.attrText([]byte(a.Value))
		r.dst = append(r.dst, '"')
	}
}

// attr writes an attribute whose value is the text of span.
// An invalid span produces an empty value.
func (r *renderState) attr(key string, span Span) {
	r.dst = append(r.dst, ' ')
	r.dst = append(r.dst, key...)
	r.dst = append(r.dst, `="`...)
	r.text(span)
	r.dst = append(r.dst, '"')
}

// text writes the source text of span.
func (r *renderState) text(span Span) {
	if !span.IsValid() {
		return
	}
	r.attrText([]byte(span.Text(r.source)))
}

func (r *renderState) attrText(b []byte) {
	if r.RawText {
		r.dst = append(r.dst, b...)
		return
	}
	r.dst = escapeHTML(r.dst, b)
}

// escapeHTML appends the HTML-escaped version of a byte slice to another byte slice.
func escapeHTML(dst []byte, src []byte) []byte {
	verbatimStart := 0
	for i, b := range src {
		var esc string
		switch b {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		default:
			continue
		}
		dst = append(dst, src[verbatimStart:i]...)
		dst = append(dst, esc...)
		verbatimStart = i + 1
	}
	return append(dst, src[verbatimStart:]...)
}
