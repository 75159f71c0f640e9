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

// Package fixtures provides access to the markup-to-HTML examples
// used to test the parser, renderer and formatter.
package fixtures

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/tools/txtar"
)

// Example is a single markup document and its expected HTML.
type Example struct {
	// Section is the name of the archive the example came from.
	Section string
	Name    string
	Markup  string
	// HTML is the expected output of the default renderer.
	HTML string
}

//go:embed *.txt
var archives embed.FS

// Load returns all the examples in archive order.
// Each archive holds pairs of files named "NAME.dj" and "NAME.html".
func Load() ([]Example, error) {
	names, err := archives.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var examples []Example
	for _, ent := range names {
		data, err := archives.ReadFile(ent.Name())
		if err != nil {
			return nil, err
		}
		section := strings.TrimSuffix(ent.Name(), path.Ext(ent.Name()))
		a := txtar.Parse(data)
		if len(a.Files)%2 != 0 {
			return nil, fmt.Errorf("%s: odd number of files", ent.Name())
		}
		for i := 0; i < len(a.Files); i += 2 {
			markup, html := a.Files[i], a.Files[i+1]
			name := strings.TrimSuffix(markup.Name, ".dj")
			if name != strings.TrimSuffix(html.Name, ".html") {
				return nil, fmt.Errorf("%s: mismatched file pair %s and %s", ent.Name(), markup.Name, html.Name)
			}
			examples = append(examples, Example{
				Section: section,
				Name:    name,
				Markup:  string(markup.Data),
				HTML:    strings.TrimSuffix(string(html.Data), "\n"),
			})
		}
	}
	return examples, nil
}
