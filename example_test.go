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

package osmxml_test

import (
	"fmt"
	"log"
	"os"

	"m4o.io/osmxml"
	"m4o.io/osmxml/model"
)

func Example() {
	in, err := os.Open("testdata/sample.osm")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	var nc, wc, rc int

	cb := osmxml.CallbackFuncs{
		Node: func(*model.Node) bool {
			nc++
			return true
		},
		Way: func(*model.Way) bool {
			wc++
			return true
		},
		Relation: func(*model.Relation) bool {
			rc++
			return true
		},
	}

	if err := osmxml.NewParser(osmxml.WithCallbacks(cb)).Parse(in); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Nodes: %d, Ways: %d, Relations: %d\n", nc, wc, rc)
	// Output:
	// Nodes: 5, Ways: 2, Relations: 1
}

func ExampleParseDatabase() {
	in, err := os.Open("testdata/sample.osm")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	db, err := osmxml.ParseDatabase(in, osmxml.WithBackend(osmxml.BackendETree))
	if err != nil {
		log.Fatal(err)
	}

	way := db.GetWay(11)
	nodes, err := way.NodeObjects()
	if err != nil {
		log.Fatal(err)
	}

	name, _ := nodes[1].Tag("name")
	fmt.Println(name)
	// Output:
	// Tea & Cake
}
