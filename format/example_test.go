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

package format_test

import (
	"bytes"
	"os"

	"zombiezen.com/go/djot"
	"zombiezen.com/go/djot/format"
)

func ExampleFormat() {
	doc := djot.Parse([]byte(
		"\n" +
			"Hello, [ World ]( https://www.example.com/ )!\n" +
			"\n\n\n" +
			">Quoted `code\n" +
			"> with _emphasis_.\n",
	))
	out := new(bytes.Buffer)
	if err := format.Format(out, doc); err != nil {
		// Writing in-memory shouldn't fail.
		panic(err)
	}
	os.Stdout.Write(out.Bytes())
	// Output:
	// Hello, [World](https://www.example.com/)!
	//
	// > Quoted `code`
	// > with _emphasis_.
}
