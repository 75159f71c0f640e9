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

	"golang.org/x/text/transform"
)

const replacementChar = "\ufffd"

// newlineNormalizer is a [transform.Transformer]
// that converts "\r\n" and lone "\r" line endings to "\n"
// and replaces NUL bytes with U+FFFD.
// Every other byte is copied verbatim.
type newlineNormalizer struct {
	transform.NopResetter
}

func (newlineNormalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		i := bytes.IndexAny(src[nSrc:], "\r\x00")
		if i < 0 {
			i = len(src) - nSrc
		}
		if i > 0 {
			n := copy(dst[nDst:], src[nSrc:nSrc+i])
			nDst += n
			nSrc += n
			if n < i {
				return nDst, nSrc, transform.ErrShortDst
			}
			continue
		}

		switch src[nSrc] {
		case '\r':
			// Need one byte of lookahead to tell CRLF from a lone CR.
			if nSrc+1 >= len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst++
			nSrc++
			if nSrc < len(src) && src[nSrc] == '\n' {
				nSrc++
			}
		case 0:
			if len(dst)-nDst < len(replacementChar) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], replacementChar)
			nSrc++
		}
	}
	return nDst, nSrc, nil
}
