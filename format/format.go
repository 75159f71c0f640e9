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

// Package format provides a function to write a parsed document
// back out as canonical markup
// that is equivalent to the original.
package format

import (
	"bytes"
	"io"
	"strings"

	"zombiezen.com/go/djot"
)

// quotePrefix is written at the start of every line inside a block quote.
const quotePrefix = "> "

// Format writes the document as canonical markup to the given writer.
// Top-level blocks are separated by a single blank line,
// line breaks inside paragraphs are kept,
// and code and math spans are written with fences
// that preserve their content.
func Format(w io.Writer, doc *djot.Document) error {
	f := &formatter{
		w:      &errWriter{w: w},
		source: doc.Source,
	}
	djot.Walk(doc.Root, &djot.WalkOptions{
		Pre: func(c *djot.Cursor) bool {
			if isInline(c.Node().Kind) {
				return f.preInline(c)
			}
			f.preBlock(c)
			return true
		},
		Post: func(c *djot.Cursor) bool {
			if isInline(c.Node().Kind) {
				f.postInline(c)
			} else {
				f.postBlock(c)
			}
			return true
		},
	})
	return f.w.err
}

type formatter struct {
	w      *errWriter
	source []byte

	prefix     string // written after every newline
	quoteParas int    // paragraphs written in the current block quote
	lastInline int    // end of the previous inline sibling in a paragraph, or -1
}

func (f *formatter) preBlock(c *djot.Cursor) {
	switch c.Node().Kind.(type) {
	case djot.BlockQuoteKind:
		if f.w.hasWritten {
			f.w.WriteString("\n")
		}
		f.prefix = quotePrefix
		f.quoteParas = 0
	case djot.ParagraphKind:
		switch c.Parent().Kind.(type) {
		case djot.BlockQuoteKind:
			if f.quoteParas > 0 {
				f.w.WriteString(strings.TrimSpace(quotePrefix))
				f.w.WriteString("\n")
			}
			f.quoteParas++
		default:
			if f.w.hasWritten {
				f.w.WriteString("\n")
			}
		}
		f.w.WriteString(f.prefix)
		f.lastInline = -1
	}
}

func (f *formatter) postBlock(c *djot.Cursor) {
	switch c.Node().Kind.(type) {
	case djot.BlockQuoteKind:
		f.prefix = ""
	case djot.ParagraphKind:
		f.w.WriteString("\n")
	}
}

// preInline writes an inline node's opening markup
// and reports whether its children should be visited.
func (f *formatter) preInline(c *djot.Cursor) bool {
	node := c.Node()
	_, inParagraph := c.Parent().Kind.(djot.ParagraphKind)
	if inParagraph {
		if f.lastInline >= 0 && f.lastInline <= node.Span.Start &&
			bytes.IndexByte(f.source[f.lastInline:node.Span.Start], '\n') >= 0 {
			f.w.WriteString("\n")
			f.w.WriteString(f.prefix)
		}
	}

	switch k := node.Kind.(type) {
	case djot.PlainTextKind:
		f.w.Write(spanSlice(f.source, node.Span))
	case djot.CodeKind:
		writeCodeSpan(f.w, spanSlice(f.source, node.Span))
	case djot.MathInlineKind:
		f.w.WriteString("$")
		writeCodeSpan(f.w, spanSlice(f.source, node.Span))
	case djot.MathDisplayKind:
		f.w.WriteString("$$")
		writeCodeSpan(f.w, spanSlice(f.source, node.Span))
	case djot.LinkKind:
		writeLink(f.w, f.source, "[", node.Span, k.Destination)
	case djot.ImageKind:
		writeLink(f.w, f.source, "![", node.Span, k.Destination)
	default:
		if open, _, ok := delimiters(node.Kind); ok {
			f.w.WriteString(open)
			if node.ChildCount() == 0 {
				f.w.Write(spanSlice(f.source, node.Span))
			}
		}
		return true
	}
	// Leaf nodes and links have no Post visit.
	if inParagraph {
		f.lastInline = node.Span.End
	}
	return false
}

func (f *formatter) postInline(c *djot.Cursor) {
	node := c.Node()
	if _, close, ok := delimiters(node.Kind); ok {
		f.w.WriteString(close)
	}
	if _, ok := c.Parent().Kind.(djot.ParagraphKind); ok {
		f.lastInline = node.Span.End
	}
}

// delimiters returns the markers that wrap the given inline kind.
func delimiters(kind djot.Kind) (open, close string, ok bool) {
	switch kind.(type) {
	case djot.MarkKind:
		return "{=", "=}", true
	case djot.InsertKind:
		return "{+", "+}", true
	case djot.DeleteKind:
		return "{-", "-}", true
	case djot.EmphKind:
		return "_", "_", true
	case djot.StrongKind:
		return "*", "*", true
	case djot.SubKind:
		return "~", "~", true
	case djot.SupKind:
		return "^", "^", true
	default:
		return "", "", false
	}
}

func isInline(kind djot.Kind) bool {
	switch kind.(type) {
	case djot.PlainTextKind, djot.CodeKind, djot.VerbatimKind,
		djot.MathInlineKind, djot.MathDisplayKind,
		djot.LinkKind, djot.ImageKind:
		return true
	default:
		_, _, ok := delimiters(kind)
		return ok
	}
}

// writeLink writes "[label](dest)" with the given opening bracket.
// Link children are not visited separately:
// the label is written from the link's own span.
func writeLink(w *errWriter, source []byte, bracket string, label, dest djot.Span) {
	w.WriteString(bracket)
	w.Write(spanSlice(source, label))
	w.WriteString("](")
	w.Write(spanSlice(source, dest))
	w.WriteString(")")
}

// writeCodeSpan writes content surrounded by a backtick fence
// that does not occur inside content.
// A space is added between the fence and content
// on any side where content begins or ends with a backtick.
func writeCodeSpan(w *errWriter, content []byte) {
	fence := strings.Repeat("`", codeFenceLength(content))
	w.WriteString(fence)
	if len(content) == 0 {
		// An empty span is a fence around a single space,
		// which the parser strips.
		w.WriteString(" ")
	}
	if len(content) > 0 && content[0] == '`' {
		w.WriteString(" ")
	}
	w.Write(content)
	if len(content) > 0 && content[len(content)-1] == '`' {
		w.WriteString(" ")
	}
	w.WriteString(fence)
}

// codeFenceLength returns the length of the shortest backtick run
// that does not appear in content.
func codeFenceLength(content []byte) int {
	seen := make(map[int]bool)
	for i := 0; i < len(content); {
		if content[i] != '`' {
			i++
			continue
		}
		n := 0
		for i+n < len(content) && content[i+n] == '`' {
			n++
		}
		seen[n] = true
		i += n
	}
	n := 1
	for seen[n] {
		n++
	}
	return n
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}

// spanSlice returns the bytes of span or nil if the span is invalid.
func spanSlice(b []byte, span djot.Span) []byte {
	if !span.IsValid() {
		return nil
	}
	return b[span.Start:span.End]
}
