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
	"bytes"

	"github.com/charmbracelet/log"
	"zombiezen.com/go/djot/internal/logging"
)

// inlineDelimiter describes a pair of markers that wrap inline content.
type inlineDelimiter struct {
	open  string
	close string
	kind  Kind
}

// inlineDelimiters is the table of paired delimiters in priority order.
// When two open markers of equal length match at the same position,
// the earlier entry wins.
var inlineDelimiters = [...]inlineDelimiter{
	{open: "{=", close: "=}", kind: MarkKind{}},
	{open: "{+", close: "+}", kind: InsertKind{}},
	{open: "{-", close: "-}", kind: DeleteKind{}},
	{open: "_", close: "_", kind: EmphKind{}},
	{open: "*", close: "*", kind: StrongKind{}},
	{open: "~", close: "~", kind: SubKind{}},
	{open: "^", close: "^", kind: SupKind{}},
}

// inlineParser parses the inline content of a single line.
type inlineParser struct {
	logger *log.Logger
}

func newInlineParser(logger *log.Logger) *inlineParser {
	if logger == nil {
		logger = logging.Discard()
	}
	return &inlineParser{logger: logger}
}

// inlineFrame is an opened delimiter waiting for its closer.
type inlineFrame struct {
	delim        *inlineDelimiter
	openPos      int
	contentStart int
	children     []*Node
}

// inlineState is the state of parsing a single line.
type inlineState struct {
	line     []byte
	nodes    []*Node
	stack    []inlineFrame
	lastEmit int // start of the pending plain text
}

// parse returns the inline nodes for line.
// offset is the position of line[0] in the document source
// and is added to every span.
// parse never fails: markup that does not close is kept as plain text.
func (p *inlineParser) parse(line []byte, offset int) []*Node {
	state := &inlineState{line: line}
	for i := 0; i < len(line); {
		if node, end := p.parseLinkOrImage(line, i); node != nil {
			state.flush(i)
			state.add(node)
			state.lastEmit = end
			i = end
			continue
		}
		if line[i] == '$' {
			run := 1
			if i+1 < len(line) && line[i+1] == '$' {
				run = 2
			}
			if cs, ok := p.parseCodeSpan(line, i+run, offset); ok {
				state.flush(i)
				var kind Kind = MathInlineKind{}
				if run == 2 {
					kind = MathDisplayKind{}
				}
				state.add(&Node{Kind: kind, Span: cs.content})
				state.lastEmit = cs.end
				i = cs.end
				continue
			}
		}
		if cs, ok := p.parseCodeSpan(line, i, offset); ok {
			state.flush(i)
			state.add(&Node{Kind: CodeKind{}, Span: cs.content})
			state.lastEmit = cs.end
			i = cs.end
			continue
		}
		if n := len(state.stack); n > 0 {
			if bytes.HasPrefix(line[i:], []byte(state.stack[n-1].delim.close)) {
				// Flush into the frame before it is popped.
				state.flush(i)
				top := state.stack[n-1]
				state.stack = state.stack[:n-1]
				state.add(&Node{
					Kind:     top.delim.kind,
					Span:     Span{Start: top.contentStart, End: i},
					Children: top.children,
				})
				i += len(top.delim.close)
				state.lastEmit = i
				continue
			}
		}
		if delim := matchOpenDelimiter(line[i:]); delim != nil {
			state.flush(i)
			end := i + len(delim.open)
			state.stack = append(state.stack, inlineFrame{
				delim:        delim,
				openPos:      i,
				contentStart: end,
			})
			state.lastEmit = end
			i = end
			continue
		}
		i++
	}

	if len(state.stack) > 0 {
		for _, frame := range state.stack {
			p.logger.Debug("unmatched delimiter kept as text",
				logging.FieldKind, frame.delim.kind.String(),
				logging.FieldMarker, frame.delim.open,
				logging.FieldOffset, offset+frame.openPos)
		}
		state.lastEmit = state.stack[0].openPos
		state.stack = nil
	}
	state.flush(len(line))

	if offset != 0 {
		for _, node := range state.nodes {
			shiftSpans(node, offset)
		}
	}
	return state.nodes
}

// flush emits the pending plain text up to end.
func (state *inlineState) flush(end int) {
	if state.lastEmit >= end {
		return
	}
	state.add(&Node{
		Kind: PlainTextKind{},
		Span: Span{Start: state.lastEmit, End: end},
	})
	state.lastEmit = end
}

// add appends node to the innermost open delimiter
// or to the top level if no delimiters are open.
func (state *inlineState) add(node *Node) {
	if n := len(state.stack); n > 0 {
		state.stack[n-1].children = append(state.stack[n-1].children, node)
		return
	}
	state.nodes = append(state.nodes, node)
}

// matchOpenDelimiter returns the longest delimiter whose open marker
// is a prefix of text, or nil if none match.
func matchOpenDelimiter(text []byte) *inlineDelimiter {
	var best *inlineDelimiter
	for i := range inlineDelimiters {
		d := &inlineDelimiters[i]
		if bytes.HasPrefix(text, []byte(d.open)) && (best == nil || len(d.open) > len(best.open)) {
			best = d
		}
	}
	return best
}

// codeSpan is the result of [*inlineParser.parseCodeSpan].
type codeSpan struct {
	content Span // relative to the line
	end     int  // position after the closing run (or end of line)
}

// parseCodeSpan attempts to parse a backtick-delimited span
// whose opening run starts at line[start].
// The closing run must have exactly the same length as the opening run;
// if there is none, the span extends to the end of the line.
// A single space is stripped from each side
// when it separates the content from a backtick.
func (p *inlineParser) parseCodeSpan(line []byte, start int, offset int) (_ codeSpan, ok bool) {
	if start >= len(line) || line[start] != '`' {
		return codeSpan{}, false
	}
	run := backtickRun(line, start)
	contentStart := start + run
	contentEnd := len(line)
	end := len(line)
	closed := false
	for i := contentStart; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}
		n := backtickRun(line, i)
		if n == run {
			contentEnd = i
			end = i + n
			closed = true
			break
		}
		i += n
	}
	if !closed {
		p.logger.Debug("unterminated code span",
			logging.FieldOffset, offset+start,
			logging.FieldMarker, string(line[start:contentStart]))
	}

	if contentStart+1 < len(line) && contentStart < contentEnd &&
		line[contentStart] == ' ' && line[contentStart+1] == '`' {
		contentStart++
	}
	if closed && contentStart < contentEnd && contentEnd >= contentStart+2 &&
		line[contentEnd-1] == ' ' && line[contentEnd-2] == '`' {
		contentEnd--
	}
	return codeSpan{
		content: Span{Start: contentStart, End: contentEnd},
		end:     end,
	}, true
}

func backtickRun(line []byte, start int) int {
	n := 0
	for start+n < len(line) && line[start+n] == '`' {
		n++
	}
	return n
}

// parseLinkOrImage attempts to parse "[label](dest)" or "![label](dest)"
// starting at line[start].
// It returns the node (with spans relative to the line)
// and the position after the closing parenthesis,
// or a nil node if the text there is not a link or image.
func (p *inlineParser) parseLinkOrImage(line []byte, start int) (_ *Node, end int) {
	labelStart := start + 1
	image := false
	switch {
	case bytes.HasPrefix(line[start:], []byte("![")):
		image = true
		labelStart = start + 2
	case line[start] == '[':
	default:
		return nil, -1
	}
	labelEnd := bytes.IndexByte(line[labelStart:], ']')
	if labelEnd < 0 {
		return nil, -1
	}
	labelEnd += labelStart
	if labelEnd+1 >= len(line) || line[labelEnd+1] != '(' {
		return nil, -1
	}
	destStart := labelEnd + 2
	destEnd := bytes.IndexByte(line[destStart:], ')')
	if destEnd < 0 {
		return nil, -1
	}
	destEnd += destStart

	label := trimSpaceSpan(line, Span{Start: labelStart, End: labelEnd})
	dest := trimSpaceSpan(line, Span{Start: destStart, End: destEnd})
	if dest.Len() == 0 {
		dest = NullSpan()
	}
	node := &Node{Span: label}
	if image {
		node.Kind = ImageKind{Destination: dest, Title: NullSpan()}
	} else {
		node.Kind = LinkKind{Destination: dest, Title: NullSpan()}
	}
	if label.Len() > 0 {
		node.Children = []*Node{{Kind: PlainTextKind{}, Span: label}}
	}
	return node, destEnd + 1
}

// trimSpaceSpan shrinks span to exclude leading and trailing ASCII whitespace.
func trimSpaceSpan(source []byte, span Span) Span {
	for span.Start < span.End && isASCIISpace(source[span.Start]) {
		span.Start++
	}
	for span.Start < span.End && isASCIISpace(source[span.End-1]) {
		span.End--
	}
	return span
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// shiftSpans adds delta to every span in the tree rooted at node,
// including the spans stored in link and image kinds.
func shiftSpans(node *Node, delta int) {
	Walk(node, &WalkOptions{
		Pre: func(c *Cursor) bool {
			n := c.Node()
			n.Span = n.Span.shift(delta)
			switch k := n.Kind.(type) {
			case LinkKind:
				k.Destination = k.Destination.shift(delta)
				k.Title = k.Title.shift(delta)
				n.Kind = k
			case ImageKind:
				k.Destination = k.Destination.shift(delta)
				k.Title = k.Title.shift(delta)
				n.Kind = k
			}
			return true
		},
	})
}
