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

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmxml"
	"m4o.io/osmxml/cmd/osmxml/cli"
	"m4o.io/osmxml/model"
)

var out io.Writer = os.Stdout

type summary struct {
	BoundingBox *model.BoundingBox `json:",omitempty"`

	NodeCount     int64
	WayCount      int64
	RelationCount int64
	TagCount      int64
	UserCount     int64

	FirstTimestamp string `json:",omitempty"`
	LastTimestamp  string `json:",omitempty"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("progress", "p", false, "show a progress bar while scanning")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM file>]",
	Short: "Print information about an OSM XML file",
	Long:  "Print object counts, extent and time range of an OSM XML file, optionally compressed",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		progress, err := flags.GetBool("progress")
		if err != nil {
			log.Fatal(err)
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		}

		in, err := cli.OpenInput(path, progress && !jsonfmt)
		if err != nil {
			log.Fatal(err)
		}

		info, err := runInfo(in, cli.Backend())
		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			err = renderJSON(info)
		} else {
			renderTxt(info)
		}

		if err != nil {
			log.Fatal(err)
		}
	},
}

// runInfo scans the document without keeping any object.
func runInfo(in io.Reader, backend osmxml.Backend) (*summary, error) {
	info := &summary{}
	bbox := model.InitialBoundingBox()
	users := map[string]struct{}{}

	object := func(o *model.Object) {
		info.TagCount += int64(len(o.Tags))

		if o.User != "" || o.UID != "" {
			users[o.UID+"/"+o.User] = struct{}{}
		}

		// timestamps share one layout, so UTC ones compare as strings
		if ts := o.Timestamp(); ts != "" {
			if info.FirstTimestamp == "" || ts < info.FirstTimestamp {
				info.FirstTimestamp = ts
			}

			if ts > info.LastTimestamp {
				info.LastTimestamp = ts
			}
		}
	}

	cb := osmxml.CallbackFuncs{
		Node: func(n *model.Node) bool {
			info.NodeCount++
			object(&n.Object)

			if lon, lat, err := n.Coordinates(); err == nil {
				bbox.ExpandWithLatLng(lat, lon)
			}

			return false
		},
		Way: func(w *model.Way) bool {
			info.WayCount++
			object(&w.Object)

			return false
		},
		Relation: func(r *model.Relation) bool {
			info.RelationCount++
			object(&r.Object)

			return false
		},
	}

	if err := osmxml.NewParser(osmxml.WithBackend(backend), osmxml.WithCallbacks(cb)).Parse(in); err != nil {
		return nil, err
	}

	if bbox.Left <= bbox.Right {
		info.BoundingBox = bbox
	}

	info.UserCount = int64(len(users))

	return info, nil
}

func renderJSON(info *summary) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, string(b))

	return err
}

func renderTxt(info *summary) {
	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	}

	fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
	fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
	fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
	fmt.Fprintf(out, "TagCount: %s\n", humanize.Comma(info.TagCount))
	fmt.Fprintf(out, "UserCount: %s\n", humanize.Comma(info.UserCount))

	if info.FirstTimestamp != "" {
		fmt.Fprintf(out, "FirstTimestamp: %s\n", info.FirstTimestamp)
		fmt.Fprintf(out, "LastTimestamp: %s\n", info.LastTimestamp)
	}
}
