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

package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/djot"
	"zombiezen.com/go/djot/internal/fixtures"
	"zombiezen.com/go/djot/internal/normhtml"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
		{
			name:  "Paragraphs",
			input: "\n\nfirst\n\n\n\nsecond",
			want:  "first\n\nsecond\n",
		},
		{
			name:  "ParagraphLines",
			input: "one\r\ntwo\r\n",
			want:  "one\ntwo\n",
		},
		{
			name:  "Delimiters",
			input: "{=a=} {+b+} {-c-} _d_ *e* ~f~ ^g^",
			want:  "{=a=} {+b+} {-c-} _d_ *e* ~f~ ^g^\n",
		},
		{
			name:  "DelimitersMixedChildren",
			input: "_a `b` c_ *x [l](d) tail* _*b* after_",
			want:  "_a `b` c_ *x [l](d) tail* _*b* after_\n",
		},
		{
			name:  "CodeUnterminated",
			input: "`foo bar",
			want:  "`foo bar`\n",
		},
		{
			name:  "CodeWithBackticks",
			input: "``` a` ```",
			want:  "`` a` ``\n",
		},
		{
			name:  "CodePadded",
			input: "`` `foo` ``",
			want:  "`` `foo` ``\n",
		},
		{
			name:  "Math",
			input: "$`x` and $$`y",
			want:  "$`x` and $$`y`\n",
		},
		{
			name:  "Link",
			input: "[ label ]( dest ) and ![alt](img.png) and [none]( )",
			want:  "[label](dest) and ![alt](img.png) and [none]()\n",
		},
		{
			name:  "BlockQuote",
			input: ">a\n> b\n>\n>\n> c\nafter",
			want:  "> a\n> b\n>\n> c\n\nafter\n",
		},
		{
			name:  "BlockQuoteBetweenParagraphs",
			input: "x\n\n> q\n\ny",
			want:  "x\n\n> q\n\ny\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := djot.Parse([]byte(test.input))
			got := new(strings.Builder)
			if err := Format(got, doc); err != nil {
				t.Error("Format:", err)
			}
			if diff := cmp.Diff(test.want, got.String()); diff != "" {
				t.Errorf("Format(Parse(%q)) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestFormatFixtures(t *testing.T) {
	examples, err := fixtures.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, ex := range examples {
		t.Run(ex.Section+"/"+ex.Name, func(t *testing.T) {
			doc := djot.Parse([]byte(ex.Markup))
			originalHTML := new(bytes.Buffer)
			if err := djot.RenderHTML(originalHTML, doc); err != nil {
				t.Fatal("Render original HTML:", err)
			}

			got := new(bytes.Buffer)
			if err := Format(got, doc); err != nil {
				t.Fatal("Format #1:", err)
			}

			formatted := djot.Parse(got.Bytes())
			formattedHTML := new(bytes.Buffer)
			if err := djot.RenderHTML(formattedHTML, formatted); err != nil {
				t.Fatal("Render formatted HTML:", err)
			}
			diff := cmp.Diff(
				string(normhtml.NormalizeHTML(originalHTML.Bytes())),
				string(normhtml.NormalizeHTML(formattedHTML.Bytes())),
			)
			if diff != "" {
				t.Errorf("Reformatting changed semantics. Original:\n%s\nReformatting:\n%s\nHTML diff (-want +got):\n%s", ex.Markup, got, diff)
			}

			reformatted := new(bytes.Buffer)
			if err := Format(reformatted, formatted); err != nil {
				t.Fatal("Format #2:", err)
			}
			if diff := cmp.Diff(got.String(), reformatted.String()); diff != "" {
				t.Errorf("Format not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFormatWriteError(t *testing.T) {
	writeErr := errors.New("bork")
	doc := djot.Parse([]byte("a\n\nb"))
	if err := Format(failWriter{writeErr}, doc); !errors.Is(err, writeErr) {
		t.Errorf("Format(...) = %v; want %v", err, writeErr)
	}
}

func TestCodeFenceLength(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 1},
		{"abc", 1},
		{"a`b", 2},
		{"a``b", 1},
		{"`a``b```", 4},
	}
	for _, test := range tests {
		if got := codeFenceLength([]byte(test.content)); got != test.want {
			t.Errorf("codeFenceLength(%q) = %d; want %d", test.content, got, test.want)
		}
	}
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}
