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

package fetch

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/osmxml"
	"m4o.io/osmxml/api"
	"m4o.io/osmxml/cmd/osmxml/cli"
	"m4o.io/osmxml/model"
)

var out io.Writer = os.Stdout

var bbox *model.BoundingBox

// request describes what to fetch.  Exactly one of bbox or kind is set.
type request struct {
	kind    model.EntityType
	ids     []model.ID
	bbox    *model.BoundingBox
	full    bool
	history bool
	version int
}

func init() {
	cli.RootCmd.AddCommand(fetchCmd)

	flags := fetchCmd.Flags()
	flags.String("api", api.DefaultBaseURL, "versioned API endpoint")
	flags.String("user-agent", api.DefaultUserAgent, "User-Agent header sent with every request")
	flags.Float64("rate", 1, "maximum requests per second")
	flags.Int("concurrency", api.DefaultConcurrency, "requests in flight when fetching many objects")
	flags.Var(cli.NewBoundingBoxValue(&bbox), "bbox", "fetch the map inside left,bottom,right,top")
	flags.Bool("full", false, "fetch a way or relation with everything it references")
	flags.Bool("history", false, "fetch every version of the object")
	flags.Int("version", 0, "fetch one version of the object")
	flags.StringP("output", "o", "", "write to this file, compressed according to its extension")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [node|way|relation <id>...]",
	Short: "Fetch objects from the OpenStreetMap API",
	Long: `Fetch objects from the OpenStreetMap API and print them as OSM XML.

  osmxml fetch node 1 2 3
  osmxml fetch way 4 --full
  osmxml fetch relation 5 --history
  osmxml fetch --bbox -0.13,51.50,-0.12,51.51 -o map.osm.gz`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		req, err := parseRequest(args, bbox)
		if err != nil {
			log.Fatal(err)
		}

		if req.full, err = flags.GetBool("full"); err != nil {
			log.Fatal(err)
		}

		if req.history, err = flags.GetBool("history"); err != nil {
			log.Fatal(err)
		}

		if req.version, err = flags.GetInt("version"); err != nil {
			log.Fatal(err)
		}

		baseURL, _ := flags.GetString("api")
		userAgent, _ := flags.GetString("user-agent")
		rps, _ := flags.GetFloat64("rate")
		concurrency, _ := flags.GetInt("concurrency")

		c, err := api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithUserAgent(userAgent),
			api.WithRateLimit(rps, 1),
			api.WithConcurrency(concurrency),
			api.WithBackend(cli.Backend()),
		)
		if err != nil {
			log.Fatal(err)
		}

		w := out
		compression := osmxml.CompressionNone

		if path, _ := flags.GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()

			w = f
			compression = osmxml.CompressionForPath(path)
		}

		if err := runFetch(cmd.Context(), c, req, w, compression); err != nil {
			log.Fatal(err)
		}
	},
}

func parseRequest(args []string, bbox *model.BoundingBox) (request, error) {
	if bbox != nil {
		if len(args) > 0 {
			return request{}, errors.New("--bbox takes no arguments")
		}

		return request{bbox: bbox}, nil
	}

	if len(args) < 2 {
		return request{}, errors.New("expected a kind and at least one id, or --bbox")
	}

	kind, err := model.ParseEntityType(args[0])
	if err != nil {
		return request{}, err
	}

	req := request{kind: kind}

	for _, s := range args[1:] {
		id, err := model.ParseID(s)
		if err != nil {
			return request{}, err
		}

		req.ids = append(req.ids, id)
	}

	return req, nil
}

// runFetch performs req and encodes the result to w.
func runFetch(ctx context.Context, c *api.Client, req request, w io.Writer, compression osmxml.Compression) error {
	enc, err := osmxml.NewEncoder(w, osmxml.WithCompression(compression), osmxml.WithBounds())
	if err != nil {
		return err
	}

	if err := fetchInto(ctx, c, req, enc); err != nil {
		return err
	}

	return enc.Close()
}

func fetchInto(ctx context.Context, c *api.Client, req request, enc *osmxml.Encoder) error {
	if req.bbox != nil {
		db, err := c.GetMap(ctx, req.bbox)
		if err != nil {
			return err
		}

		if err := enc.ExpandBounds(req.bbox); err != nil {
			return err
		}

		return enc.EncodeDatabase(db)
	}

	switch {
	case req.full:
		for _, id := range req.ids {
			db, err := c.GetFull(ctx, req.kind, id)
			if err != nil {
				return err
			}

			if err := enc.EncodeDatabase(db); err != nil {
				return err
			}
		}
	case req.history:
		for _, id := range req.ids {
			objs, err := c.GetHistory(ctx, req.kind, id)
			if err != nil {
				return err
			}

			if err := enc.Encode(objs...); err != nil {
				return err
			}
		}
	case req.version > 0:
		for _, id := range req.ids {
			o, err := c.GetVersion(ctx, req.kind, id, req.version)
			if err != nil {
				return err
			}

			if err := enc.Encode(o); err != nil {
				return err
			}
		}
	case len(req.ids) == 1:
		o, err := c.GetObject(ctx, req.kind, req.ids[0])
		if err != nil {
			return err
		}

		return enc.Encode(o)
	default:
		objs, err := c.GetObjects(ctx, req.kind, req.ids...)
		if err != nil {
			return err
		}

		return enc.Encode(objs...)
	}

	return nil
}
