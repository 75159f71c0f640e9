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

// Package normhtml normalizes rendered HTML
// so that tests can compare output
// without depending on insignificant differences
// like attribute order or whitespace between blocks.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

type attribute struct {
	key   string
	value string
}

// NormalizeHTML returns b with the following differences removed:
//
//   - Runs of whitespace in text collapse to a single space.
//   - Whitespace around block-level elements is dropped.
//   - Attributes are sorted by name
//     and the words of a class attribute are sorted.
//   - Character references are decoded
//     and text is re-escaped consistently.
func NormalizeHTML(b []byte) []byte {
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var output []byte
	last := html.StartTagToken
	lastTag := atom.Atom(0)
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return output
		case html.TextToken:
			data := whitespaceRE.ReplaceAll(tok.Text(), []byte(" "))
			if isBlockTag(lastTag) {
				switch last {
				case html.StartTagToken:
					data = bytes.TrimLeftFunc(data, unicode.IsSpace)
				case html.EndTagToken:
					data = bytes.TrimSpace(data)
				}
			}
			output = append(output, textEscaper.Replace(bytes.Clone(data))...)
		case html.EndTagToken:
			name, _ := tok.TagName()
			lastTag = atom.Lookup(name)
			if isBlockTag(lastTag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "</"...)
			output = append(output, name...)
			output = append(output, '>')
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			lastTag = atom.Lookup(name)
			if isBlockTag(lastTag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, '<')
			output = append(output, name...)
			if hasAttr {
				output = appendAttributes(output, tok)
			}
			output = append(output, '>')
		case html.CommentToken:
			output = append(output, tok.Raw()...)
		}

		last = tt
		if tt == html.SelfClosingTagToken {
			last = html.EndTagToken
		}
	}
}

func appendAttributes(dst []byte, tok *html.Tokenizer) []byte {
	var attrs []attribute
	for {
		k, v, more := tok.TagAttr()
		a := attribute{key: string(k), value: string(v)}
		if a.key == "class" {
			classes := strings.Fields(a.value)
			sort.Strings(classes)
			a.value = strings.Join(classes, " ")
		}
		attrs = append(attrs, a)
		if !more {
			break
		}
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].key < attrs[j].key
	})
	for _, a := range attrs {
		dst = append(dst, ' ')
		dst = append(dst, a.key...)
		dst = append(dst, `="`...)
		dst = append(dst, html.EscapeString(a.value)...)
		dst = append(dst, '"')
	}
	return dst
}

func isBlockTag(a atom.Atom) bool {
	switch a {
	case atom.Blockquote, atom.Div, atom.Hr, atom.Li, atom.Ol, atom.Ul, atom.P,
		atom.Pre, atom.Table, atom.Tr, atom.Td, atom.Th,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}
