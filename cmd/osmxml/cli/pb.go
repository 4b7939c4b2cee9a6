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

package cli

import (
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"

	"m4o.io/osmxml/internal/decoder"
)

// progressBar is an instance of ReadCloser with an associated ProgressBar.
// Closing this instance closes the delegates as well as clearing the terminal
// line of progress output.
type progressBar struct {
	r   io.ReadCloser
	f   *os.File
	bar *pb.ProgressBar
}

// OpenInput opens the OSM XML file at path, or stdin when path is empty or
// "-".  Compressed input is unpacked.  With progress set, a bar on stderr
// tracks the bytes read from a regular file.
func OpenInput(path string, progress bool) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return decoder.Unpack(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if !progress {
		rc, err := decoder.Unpack(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}

		return &progressBar{r: rc, f: f}, nil
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	bar := pb.New64(fi.Size()).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	rc, err := decoder.Unpack(bar.NewProxyReader(f))
	if err != nil {
		bar.Finish()
		_ = f.Close()

		return nil, err
	}

	return &progressBar{r: rc, f: f, bar: bar}, nil
}

// Read implements io.Reader.Read by simple delegation.
func (pb *progressBar) Read(p []byte) (int, error) {
	return pb.r.Read(p)
}

// Close implements io.Closer.Close by closing the unpacker and the file as
// well as clearing the terminal line of progress output.
func (pb *progressBar) Close() error {
	if pb.bar != nil {
		// make sure newline is not printed by Finish()
		pb.bar.Output = nil
		pb.bar.NotPrint = true

		pb.bar.Finish()

		fmt.Fprintf(os.Stderr, "\033[2K\r") // clear status bar
	}

	err := pb.r.Close()
	if cerr := pb.f.Close(); err == nil {
		err = cerr
	}

	return err
}
