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

package djot_test

import (
	"fmt"
	"os"
	"strings"

	"zombiezen.com/go/djot"
)

func Example() {
	// Convert markup to a parse tree.
	doc := djot.Parse([]byte("Hello, *World*!\n"))
	// Render parse tree to HTML.
	djot.RenderHTML(os.Stdout, doc)
	// Output:
	// <p>Hello, <strong>World</strong>!</p>
}

func ExampleReadDocument() {
	input := strings.NewReader("Windows line endings\r\nare normalized.\r\n\r\n> [Quoted](https://djot.net/) text\r\n")
	doc, err := djot.ReadDocument(input)
	if err != nil {
		// Not expecting an error from a string.
		panic(err)
	}
	r := &djot.HTMLRenderer{BlockSeparator: "\n"}
	r.Render(os.Stdout, doc.Source, doc.Root)
	// Output:
	// <p>Windows line endingsare normalized.</p>
	// <p><a href="https://djot.net/">Quoted</a> text</p>
}

func ExampleWalk() {
	doc := djot.Parse([]byte("Some _emphasized_ and `coded` text"))
	djot.Walk(doc.Root, &djot.WalkOptions{
		Pre: func(c *djot.Cursor) bool {
			switch c.Node().Kind.(type) {
			case djot.EmphKind, djot.CodeKind:
				fmt.Printf("%v: %q\n", c.Node().Kind, c.Node().Text(doc.Source))
			}
			return true
		},
	})
	// Output:
	// Emph: "emphasized"
	// Code: "coded"
}

func ExampleLoadConfig() {
	cfg, err := djot.LoadConfig(strings.NewReader("html:\n  raw_text: true\n"))
	if err != nil {
		panic(err)
	}
	doc := cfg.NewParser().Parse([]byte("Tom & Jerry"))
	cfg.NewHTMLRenderer().Render(os.Stdout, doc.Source, doc.Root)
	// Output:
	// <p>Tom & Jerry</p>
}
