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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	doc := Parse([]byte("a _b_\n\n> c"))
	var got []string
	Walk(doc.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			got = append(got, fmt.Sprintf("pre %v depth=%d", c.Node().Kind, c.Depth()))
			return true
		},
		Post: func(c *Cursor) bool {
			got = append(got, fmt.Sprintf("post %v", c.Node().Kind))
			return true
		},
	})
	want := []string{
		"pre Document depth=0",
		"pre Paragraph depth=1",
		"pre PlainText depth=2",
		"post PlainText",
		"pre Emph depth=2",
		"pre PlainText depth=3",
		"post PlainText",
		"post Emph",
		"post Paragraph",
		"pre BlockQuote depth=1",
		"pre Paragraph depth=2",
		"pre PlainText depth=3",
		"post PlainText",
		"post Paragraph",
		"post BlockQuote",
		"post Document",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visits (-want +got):\n%s", diff)
	}
}

func TestWalkSkipChildren(t *testing.T) {
	doc := Parse([]byte("a _b_"))
	var got []string
	Walk(doc.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			got = append(got, c.Node().Kind.String())
			_, isEmph := c.Node().Kind.(EmphKind)
			return !isEmph
		},
		Post: func(c *Cursor) bool {
			if _, isEmph := c.Node().Kind.(EmphKind); isEmph {
				t.Error("Post called for node whose Pre returned false")
			}
			return true
		},
	})
	want := []string{"Document", "Paragraph", "PlainText", "Emph"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visits (-want +got):\n%s", diff)
	}
}

func TestWalkStop(t *testing.T) {
	doc := Parse([]byte("a\n\nb"))
	var got []string
	Walk(doc.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			got = append(got, c.Node().Text(doc.Source))
			return true
		},
		Post: func(c *Cursor) bool {
			_, isPara := c.Node().Kind.(ParagraphKind)
			return !isPara
		},
	})
	want := []string{"a\n\nb", "a", "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visits (-want +got):\n%s", diff)
	}
}

func TestWalkParent(t *testing.T) {
	doc := Parse([]byte("_x_"))
	Walk(doc.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if c.Node() == doc.Root {
				if c.Parent() != nil {
					t.Errorf("root Parent() = %v; want <nil>", c.Parent().Kind)
				}
				return true
			}
			found := false
			for _, child := range c.Parent().Children {
				found = found || child == c.Node()
			}
			if !found {
				t.Errorf("%v node is not a child of its Parent() %v", c.Node().Kind, c.Parent().Kind)
			}
			return true
		},
	})
}

func TestWalkNil(t *testing.T) {
	Walk(nil, &WalkOptions{
		Pre: func(c *Cursor) bool {
			t.Error("Pre called for nil root")
			return true
		},
	})
}
