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

// blockParser groups consecutive lines into block nodes
// and hands each line's text to an [inlineParser].
type blockParser struct {
	ctx    *lineContext
	inline *inlineParser
}

// parseBlocks parses blocks until the end of input,
// skipping blank lines between them.
func (p *blockParser) parseBlocks() []*Node {
	var blocks []*Node
	for !p.ctx.isEOF() {
		if isBlankLine(p.ctx.currentLine()) {
			p.ctx.advance()
			continue
		}
		blocks = append(blocks, p.parseBlock())
	}
	return blocks
}

// parseBlock parses a single block starting at the current line,
// which must not be blank.
func (p *blockParser) parseBlock() *Node {
	if parseBlockQuoteMarker(p.ctx.currentLine()) >= 0 {
		return p.parseBlockQuote()
	}
	return p.parseParagraph()
}

func (p *blockParser) parseParagraph() *Node {
	para := &Node{
		Kind: ParagraphKind{},
		Span: Span{
			Start: p.ctx.lineSpan().Start,
			End:   p.ctx.lineSpan().Start,
		},
	}
	for !p.ctx.isEOF() {
		content, _ := p.ctx.contentSpan(0)
		line := spanSlice(p.ctx.buf, content)
		if isBlankLine(line) {
			break
		}
		para.Children = append(para.Children, p.inline.parse(line, content.Start)...)
		para.Span.End = content.End
		p.ctx.advance()
	}
	return para
}

func (p *blockParser) parseBlockQuote() *Node {
	quote := &Node{
		Kind: BlockQuoteKind{},
		Span: Span{
			Start: p.ctx.lineSpan().Start,
			End:   p.ctx.lineSpan().Start,
		},
	}
	var pending []*Node
	for !p.ctx.isEOF() {
		content, _ := p.ctx.contentSpan(0)
		line := spanSlice(p.ctx.buf, content)
		markerEnd := parseBlockQuoteMarker(line)
		if markerEnd < 0 {
			break
		}
		if rest := line[markerEnd:]; isBlankLine(rest) {
			quote.Children = appendParagraph(quote.Children, pending)
			pending = nil
		} else {
			pending = append(pending, p.inline.parse(rest, content.Start+markerEnd)...)
		}
		quote.Span.End = p.ctx.lineSpan().End
		p.ctx.advance()
	}
	quote.Children = appendParagraph(quote.Children, pending)
	return quote
}

// appendParagraph appends a paragraph holding the given inline nodes to blocks.
// If there are no inline nodes, blocks is returned unchanged.
func appendParagraph(blocks []*Node, inlines []*Node) []*Node {
	if len(inlines) == 0 {
		return blocks
	}
	return append(blocks, &Node{
		Kind: ParagraphKind{},
		Span: Span{
			Start: inlines[0].Span.Start,
			End:   inlines[len(inlines)-1].Span.End,
		},
		Children: inlines,
	})
}

// parseBlockQuoteMarker attempts to parse a block quote marker
// from the beginning of the line.
// It returns the end of the marker (including one following space)
// or -1 if the line does not begin with the marker.
func parseBlockQuoteMarker(line []byte) (end int) {
	if len(line) == 0 || line[0] != '>' {
		return -1
	}
	if len(line) > 1 && line[1] == ' ' {
		return 2
	}
	return 1
}
