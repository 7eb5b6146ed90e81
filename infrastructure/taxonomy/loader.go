// Package taxonomy loads societal benefit taxonomy documents from YAML.
package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"os"

	domaintaxonomy "github.com/nsidc/usaon-vta-survey/domain/taxonomy"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a document defines no areas.
var ErrEmptyDocument = errors.New("taxonomy document defines no areas")

// Document is the YAML shape of a taxonomy seed file:
//
//	areas:
//	  - id: Agriculture
//	    subareas:
//	      - id: Crop production
//	        key_objectives: [Yield forecasting, Drought monitoring]
type Document struct {
	Areas []AreaDocument `yaml:"areas"`
}

// AreaDocument is one area and its subareas.
type AreaDocument struct {
	ID       string            `yaml:"id"`
	SubAreas []SubAreaDocument `yaml:"subareas"`
}

// SubAreaDocument is one subarea and its key objectives.
type SubAreaDocument struct {
	ID            string   `yaml:"id"`
	KeyObjectives []string `yaml:"key_objectives"`
}

// Load parses a YAML taxonomy document and validates it into a Tree.
// Unknown fields are rejected.
func Load(r io.Reader) (domaintaxonomy.Tree, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return domaintaxonomy.Tree{}, ErrEmptyDocument
		}
		return domaintaxonomy.Tree{}, fmt.Errorf("parse taxonomy document: %w", err)
	}
	return doc.Tree()
}

// LoadFile reads and parses the taxonomy document at path.
func LoadFile(path string) (domaintaxonomy.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return domaintaxonomy.Tree{}, fmt.Errorf("open taxonomy document: %w", err)
	}
	defer func() { _ = f.Close() }()

	tree, err := Load(f)
	if err != nil {
		return domaintaxonomy.Tree{}, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Tree flattens the document into its three levels and validates them.
func (d Document) Tree() (domaintaxonomy.Tree, error) {
	if len(d.Areas) == 0 {
		return domaintaxonomy.Tree{}, ErrEmptyDocument
	}

	var (
		areas         []domaintaxonomy.Area
		subAreas      []domaintaxonomy.SubArea
		keyObjectives []domaintaxonomy.KeyObjective
	)
	for _, a := range d.Areas {
		areas = append(areas, domaintaxonomy.NewArea(a.ID))
		for _, s := range a.SubAreas {
			subAreas = append(subAreas, domaintaxonomy.NewSubArea(s.ID, a.ID))
			for _, k := range s.KeyObjectives {
				keyObjectives = append(keyObjectives, domaintaxonomy.NewKeyObjective(k, s.ID))
			}
		}
	}
	return domaintaxonomy.NewTree(areas, subAreas, keyObjectives)
}
