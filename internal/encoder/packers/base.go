// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package packers contains the compressing writers used when saving OSM XML.
package packers

import (
	"io"
)

type base struct {
	wc io.WriteCloser
}

func newBasePacker(wc io.WriteCloser) *base {
	return &base{wc: wc}
}

func (b *base) Write(p []byte) (int, error) {
	return b.wc.Write(p)
}

func (b *base) Close() error {
	return b.wc.Close()
}
