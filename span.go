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
	"unicode/utf8"
)

// A Span is a half-open range of bytes [Start, End) in a [Document.Source].
// Spans are coordinates: they never hold a copy of the text they refer to.
type Span struct {
	Start int
	End   int
}

// NullSpan returns an invalid span.
// It is used for optional spans that are absent,
// like the destination of a link written as "[text]()".
func NullSpan() Span {
	return Span{
		Start: -1,
		End:   -1,
	}
}

// IsValid reports whether the span has a non-negative start
// that does not come after its end.
func (span Span) IsValid() bool {
	return span.Start >= 0 && span.Start <= span.End
}

// Len returns the number of bytes in the span
// or zero if the span is invalid.
func (span Span) Len() int {
	if !span.IsValid() {
		return 0
	}
	return span.End - span.Start
}

// Contains reports whether other lies entirely within span.
// An invalid span neither contains nor is contained by any span.
func (span Span) Contains(other Span) bool {
	return span.IsValid() && other.IsValid() &&
		span.Start <= other.Start && other.End <= span.End
}

// Text returns the source text that the span refers to.
// Text returns the empty string for an invalid span.
// Resolving a span that is out of range
// or that does not cover valid UTF-8 is a programming error
// and Text will panic.
func (span Span) Text(source []byte) string {
	if !span.IsValid() {
		return ""
	}
	b := spanSlice(source, span)
	if !utf8.Valid(b) {
		panic(fmt.Errorf("djot: span %v is not valid UTF-8", span))
	}
	return string(b)
}

// String formats the span in interval notation.
func (span Span) String() string {
	if !span.IsValid() {
		return "[invalid]"
	}
	return fmt.Sprintf("[%d,%d)", span.Start, span.End)
}

func spanSlice(b []byte, span Span) []byte {
	if span.End > len(b) {
		panic(fmt.Errorf("djot: span %v out of range for %d-byte source", span, len(b)))
	}
	return b[span.Start:span.End]
}

// shift returns the span moved by delta bytes.
// Invalid spans are returned unchanged.
func (span Span) shift(delta int) Span {
	if !span.IsValid() {
		return span
	}
	return Span{Start: span.Start + delta, End: span.End + delta}
}
