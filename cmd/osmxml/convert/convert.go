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

package convert

import (
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/osmxml"
	"m4o.io/osmxml/cmd/osmxml/cli"
)

var compression = osmxml.CompressionNone

// options are the encoder settings of one conversion.
type options struct {
	compression osmxml.Compression
	generator   string
	version     string
	bounds      bool
}

func init() {
	cli.RootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.VarP(cli.NewCompressionValue(&compression), "compression", "c",
		"none, gzip, zstd, lz4 or xz (default from the output extension)")
	flags.StringP("generator", "g", "osmxml", "generator attribute of the output")
	flags.String("osm-version", osmxml.Version06, "version attribute of the output")
	flags.Bool("bounds", false, "write a bounds element enclosing every node")
	flags.BoolP("progress", "p", false, "show a progress bar while reading")
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Re-encode an OSM XML file",
	Long: `Read an OSM XML file, compressed or not, and write it again with nodes,
ways and relations grouped and sorted by id.  Use - for stdin or stdout.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		opts := options{compression: compression}
		opts.generator, _ = flags.GetString("generator")
		opts.version, _ = flags.GetString("osm-version")
		opts.bounds, _ = flags.GetBool("bounds")
		progress, _ := flags.GetBool("progress")

		if !flags.Changed("compression") {
			opts.compression = osmxml.CompressionForPath(args[1])
		}

		in, err := cli.OpenInput(args[0], progress)
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		var w io.Writer = os.Stdout

		if args[1] != "-" {
			f, err := os.Create(args[1])
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()

			w = f
		}

		if err := runConvert(in, w, cli.Backend(), opts); err != nil {
			log.Fatal(err)
		}
	},
}

func runConvert(in io.Reader, w io.Writer, backend osmxml.Backend, opts options) error {
	db, err := osmxml.ParseDatabase(in, osmxml.WithBackend(backend))
	if err != nil {
		return err
	}

	encOpts := []osmxml.EncoderOption{
		osmxml.WithCompression(opts.compression),
		osmxml.WithGenerator(opts.generator),
		osmxml.WithVersion(opts.version),
	}

	if opts.bounds {
		encOpts = append(encOpts, osmxml.WithBounds())
	}

	enc, err := osmxml.NewEncoder(w, encOpts...)
	if err != nil {
		return err
	}

	if err := enc.EncodeDatabase(db); err != nil {
		return err
	}

	nodes, ways, relations := db.Counts()
	slog.Info("converted", "nodes", nodes, "ways", ways, "relations", relations, "compression", opts.compression)

	return enc.Close()
}
