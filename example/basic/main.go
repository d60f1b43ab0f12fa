package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	provenance "github.com/GusEllerm/ro-crate-provenance-tools"
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

const metadata = `{
	"@context": "https://w3id.org/ro/crate/1.1/context",
	"@graph": [
		{
			"@id": "ro-crate-metadata.json",
			"@type": "CreativeWork",
			"about": {"@id": "./"}
		},
		{
			"@id": "./",
			"@type": "Dataset",
			"name": "example run"
		},
		{
			"@id": "raw/readings.csv",
			"@type": "File",
			"name": "raw sensor readings",
			"encodingFormat": "text/csv"
		},
		{
			"@id": "derived/timeseries.csv",
			"@type": "File",
			"name": "calibrated timeseries",
			"encodingFormat": "text/csv"
		},
		{
			"@id": "#calibrate",
			"@type": "CreateAction",
			"name": "calibrate readings",
			"object": {"@id": "raw/readings.csv"},
			"result": {"@id": "derived/timeseries.csv"}
		}
	]
}`

func main() {
	dir, err := os.MkdirTemp("", "example-crate")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "ro-crate-metadata.json")
	if err := os.WriteFile(path, []byte(metadata), 0o644); err != nil {
		log.Fatal(err)
	}

	c, err := provenance.FromDir(dir)
	if err != nil {
		log.Fatal(err)
	}

	rec, err := c.Lineage("timeseries")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("target: %s\n", rec.Target.ID)
	for _, producer := range rec.Producers {
		fmt.Printf("produced by: %s (%s)\n", producer.Action.ID, producer.Action.Name)
	}

	graph, err := c.Ancestry("timeseries", model.DefaultTraversalConfig())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("ancestry order: %v\n", graph.Order)

	out, err := c.ToonLineage("timeseries")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
}
