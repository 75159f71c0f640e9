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
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"zombiezen.com/go/djot/internal/fixtures"
	"zombiezen.com/go/djot/internal/logging"
)

func TestInsecureCharacters(t *testing.T) {
	const input = "Hello,\x00World"
	const want = "Hello,\ufffdWorld"

	type testCase struct {
		name string
		doc  *Document
		err  error
	}
	var tests []testCase
	tests = append(tests, testCase{
		name: "Parse",
		doc:  Parse([]byte(input)),
	})
	streamDoc, err := ReadDocument(strings.NewReader(input))
	tests = append(tests, testCase{
		name: "ReadDocument",
		doc:  streamDoc,
		err:  err,
	})

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.err != nil {
				t.Fatal("During read:", test.err)
			}
			root := test.doc.Root
			if got := root.ChildCount(); got != 1 {
				t.Fatalf("Root.ChildCount() = %d; want 1", got)
			}
			para := root.Child(0)
			if _, ok := para.Kind.(ParagraphKind); !ok {
				t.Fatalf("Root.Child(0).Kind = %v; want %v", para.Kind, ParagraphKind{})
			}
			if got := para.ChildCount(); got != 1 {
				t.Fatalf("Root.Child(0).ChildCount() = %d; want 1", got)
			}
			if got := para.Child(0).Text(test.doc.Source); got != want {
				t.Errorf("Root.Child(0).Child(0).Text(...) = %q; want %q", got, want)
			}
		})
	}
}

func TestReadDocument(t *testing.T) {
	inputs := []string{
		"",
		"one\r\ntwo\r\n\r\nthree",
		"> a\r> b\r>\r> c",
		"_x_ and `y\r\n",
	}
	for _, input := range inputs {
		want := Parse([]byte(input))
		got, err := ReadDocument(iotest.OneByteReader(strings.NewReader(input)))
		if err != nil {
			t.Errorf("ReadDocument(%q): %v", input, err)
			continue
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("ReadDocument(%q) differs from Parse (-want +got):\n%s", input, diff)
		}
	}
}

func TestReadDocumentError(t *testing.T) {
	readErr := errors.New("bork")
	_, err := ReadDocument(iotest.ErrReader(readErr))
	if !errors.Is(err, readErr) {
		t.Errorf("ReadDocument(...) = _, %v; want %v", err, readErr)
	}
}

func TestParserLogger(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"`open code", "unterminated code span"},
		{"$`open math", "unterminated code span"},
		{"an _open emphasis", "unmatched delimiter kept as text"},
		{"an *open strong", "kind=Strong"},
		{"plain", "parsed document"},
	}
	for _, test := range tests {
		buf := new(bytes.Buffer)
		p := &Parser{Logger: logging.NewWriter(buf, "debug")}
		p.Parse([]byte(test.input))
		if got := buf.String(); !strings.Contains(got, test.want) {
			t.Errorf("Parse(%q) logged:\n%s\nwant it to contain %q", test.input, got, test.want)
		}
	}
}

func FuzzParse(f *testing.F) {
	examples, err := fixtures.Load()
	if err != nil {
		f.Fatal(err)
	}
	for _, ex := range examples {
		f.Add(ex.Markup)
	}

	f.Fuzz(func(t *testing.T, markup string) {
		if !utf8.ValidString(markup) {
			t.Skip("Invalid UTF-8")
		}
		doc := Parse([]byte(markup))
		if got, want := doc.Root.Span, (Span{Start: 0, End: len(doc.Source)}); got != want {
			t.Errorf("Root.Span = %v; want %v", got, want)
		}
		verifySpansDontExceedParents(t, doc.Source, doc.Root, doc.Root.Span)

		// Rendering must not panic.
		ToHTML(doc.Source, doc.Root)
	})
}

func verifySpansDontExceedParents(tb testing.TB, source []byte, n *Node, parentSpan Span) {
	tb.Helper()

	if !n.Span.IsValid() {
		tb.Errorf("%v node span %v is invalid", n.Kind, n.Span)
		return
	}
	if !parentSpan.Contains(n.Span) {
		tb.Errorf("%v node span %v exceeds parent span %v", n.Kind, n.Span, parentSpan)
	}
	var dest Span
	switch k := n.Kind.(type) {
	case LinkKind:
		dest = k.Destination
	case ImageKind:
		dest = k.Destination
	}
	if dest.IsValid() && dest.End > len(source) {
		tb.Errorf("%v node destination %v out of range", n.Kind, dest)
	}
	for _, c := range n.Children {
		verifySpansDontExceedParents(tb, source, c, n.Span)
	}
}
