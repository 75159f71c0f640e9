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
	"unicode"

	"golang.org/x/text/transform"
)

// lineContext presents a normalized source buffer
// as a random-access sequence of lines with a cursor
// marking the first unconsumed line.
type lineContext struct {
	buf   []byte
	lines []Span // each line, including its trailing '\n' if present
	pos   int    // index of the first unconsumed line
}

// newLineContext normalizes src with [newlineNormalizer]
// and indexes the result.
func newLineContext(src []byte) *lineContext {
	buf, _, err := transform.Bytes(newlineNormalizer{}, src)
	if err != nil {
		// The normalizer only fails on short buffers,
		// which transform.Bytes never passes to it at EOF.
		panic(err)
	}
	return newLineContextNormalized(buf)
}

// newLineContextNormalized indexes a buffer
// that has already been passed through [newlineNormalizer].
func newLineContextNormalized(buf []byte) *lineContext {
	return &lineContext{
		buf:   buf,
		lines: indexLines(buf),
	}
}

// indexLines returns the contiguous ranges of each line in buf.
// A trailing '\n' does not start an extra empty line.
func indexLines(buf []byte) []Span {
	lines := make([]Span, 0, bytes.Count(buf, []byte{'\n'})+1)
	start := 0
	for {
		i := bytes.IndexByte(buf[start:], '\n')
		if i < 0 {
			break
		}
		end := start + i + 1
		lines = append(lines, Span{Start: start, End: end})
		start = end
	}
	if start < len(buf) {
		lines = append(lines, Span{Start: start, End: len(buf)})
	}
	return lines
}

func (ctx *lineContext) lineCount() int {
	return len(ctx.lines)
}

// isEOF reports whether all lines have been consumed.
func (ctx *lineContext) isEOF() bool {
	return ctx.pos >= len(ctx.lines)
}

// advance moves to the next line.
// It is a no-op at EOF.
func (ctx *lineContext) advance() {
	if !ctx.isEOF() {
		ctx.pos++
	}
}

// peekLine returns the n'th lookahead line (0 is the current line)
// without its line terminator.
// ok is false if the line is past the end of input.
func (ctx *lineContext) peekLine(n int) (line []byte, ok bool) {
	span, ok := ctx.contentSpan(n)
	if !ok {
		return nil, false
	}
	return spanSlice(ctx.buf, span), true
}

// currentLine returns the current line without its line terminator,
// or an empty line at EOF.
func (ctx *lineContext) currentLine() []byte {
	line, _ := ctx.peekLine(0)
	return line
}

// contentSpan returns the span of the n'th lookahead line
// excluding its line terminator.
func (ctx *lineContext) contentSpan(n int) (_ Span, ok bool) {
	i := ctx.pos + n
	if n < 0 || i >= len(ctx.lines) {
		return Span{}, false
	}
	span := ctx.lines[i]
	if span.End > span.Start && ctx.buf[span.End-1] == '\n' {
		span.End--
	}
	return span, true
}

// lineSpan returns the span of the current line
// including its line terminator.
// It panics at EOF.
func (ctx *lineContext) lineSpan() Span {
	return ctx.lines[ctx.pos]
}

// isBlankLine reports whether line is empty
// or consists only of Unicode whitespace.
func isBlankLine(line []byte) bool {
	return len(bytes.TrimFunc(line, unicode.IsSpace)) == 0
}
