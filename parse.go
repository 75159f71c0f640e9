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

// Package djot provides a parser and HTML renderer
// for a subset of the [Djot] lightweight markup language.
//
// Parsing never fails:
// markup that cannot be interpreted is kept as plain text.
// The resulting tree refers to the source through byte [Span] values
// instead of holding copies of the text.
//
// [Djot]: https://djot.net/
package djot

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/text/transform"
	"zombiezen.com/go/djot/internal/logging"
)

// A Parser holds options for parsing documents.
// The zero value is a parser with default options.
type Parser struct {
	// Logger receives debug records about markup
	// that was degraded to plain text.
	// If Logger is nil, records are discarded.
	Logger *log.Logger
}

// Parse parses a document with default options.
// Line endings are normalized to "\n"
// and NUL bytes are replaced with U+FFFD
// before parsing.
func Parse(source []byte) *Document {
	return new(Parser).Parse(source)
}

// Parse parses a document held in memory.
func (p *Parser) Parse(source []byte) *Document {
	return p.parse(newLineContext(source))
}

// ReadDocument reads and parses a document with default options.
func ReadDocument(r io.Reader) (*Document, error) {
	return new(Parser).ReadDocument(r)
}

// ReadDocument reads r to EOF, normalizing line endings as it goes,
// and parses the result.
// The only errors returned are those from r.
func (p *Parser) ReadDocument(r io.Reader) (*Document, error) {
	buf, err := io.ReadAll(transform.NewReader(r, newlineNormalizer{}))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.parse(newLineContextNormalized(buf)), nil
}

func (p *Parser) parse(ctx *lineContext) *Document {
	logger := p.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	bp := &blockParser{
		ctx:    ctx,
		inline: newInlineParser(logger),
	}
	root := &Node{
		Kind:     DocumentKind{},
		Span:     Span{Start: 0, End: len(ctx.buf)},
		Children: bp.parseBlocks(),
	}
	logger.Debug("parsed document",
		logging.FieldBytes, len(ctx.buf),
		logging.FieldLines, ctx.lineCount(),
		logging.FieldBlocks, len(root.Children))
	return &Document{
		Source: ctx.buf,
		Root:   root,
	}
}
