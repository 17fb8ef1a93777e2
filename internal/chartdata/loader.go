// Package chartdata reads the JSON "domain" documents the dashboard's data
// layer produces. It is the boundary collaborator for the CLI: everything
// past this package works on validated core.Series values only.
package chartdata

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/macrolens/macrolens/pkg/core"
	"github.com/macrolens/macrolens/pkg/logger"
)

// DefaultName keys a document that carries a single unnamed series.
const DefaultName = "default"

// Document is one parsed chart-data domain: a set of named series.
type Document struct {
	series map[string]core.Series
}

// Load reads and parses a domain document from disk.
func Load(path string, log logger.Logger) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a domain document. Two top-level shapes are accepted: a
// {"series": {name: ...}} map, or a bare single series stored under
// DefaultName. Each series may use the current {"dates","values"} keys or
// the legacy {"x","y"} keys still emitted by older exporters.
func Parse(data []byte, log logger.Logger) (*Document, error) {
	var raw struct {
		Series map[string]json.RawMessage `json:"series"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	doc := &Document{series: make(map[string]core.Series)}

	if raw.Series == nil {
		s, err := parseSeries(data, DefaultName, log)
		if err != nil {
			return nil, err
		}
		doc.series[DefaultName] = s
		return doc, nil
	}

	for name, entry := range raw.Series {
		s, err := parseSeries(entry, name, log)
		if err != nil {
			return nil, err
		}
		doc.series[name] = s
	}
	return doc, nil
}

// Series returns a named series from the document.
func (d *Document) Series(name string) (core.Series, bool) {
	s, ok := d.series[name]
	return s, ok
}

// First returns the document's only series, or false when the document
// holds none or more than one.
func (d *Document) First() (core.Series, bool) {
	if len(d.series) != 1 {
		return core.Series{}, false
	}
	for _, s := range d.series {
		return s, true
	}
	return core.Series{}, false
}

// Names lists the document's series names in stable order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.series))
	for name := range d.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseSeries(data []byte, name string, log logger.Logger) (core.Series, error) {
	var s core.Series
	if err := json.Unmarshal(data, &s); err != nil {
		return core.Series{}, fmt.Errorf("series %q: %w", name, err)
	}

	if s.Dates == nil {
		var legacy struct {
			X []string   `json:"x"`
			Y []*float64 `json:"y"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil || legacy.X == nil {
			return core.Series{}, fmt.Errorf("series %q: no dates/values or x/y keys", name)
		}

		log.WithField("series", name).Warn("legacy x/y keys, consider re-exporting")

		s.Dates = legacy.X
		s.Values = make([]float64, len(legacy.Y))
		for i, y := range legacy.Y {
			if y == nil {
				s.Values[i] = core.Missing()
			} else {
				s.Values[i] = *y
			}
		}
	}

	if err := s.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("series %q: %w", name, err)
	}
	return s, nil
}
