// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package series

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultPalette colours series whose document entry has no colour.
var DefaultPalette = []string{
	"#f37021",
	"#60a5fa",
	"#8b5cf6",
	"#10b981",
	"#f59e0b",
	"#ec4899",
	"#14b8a6",
}

const documentSchema = `{
  "type": "object",
  "required": ["columns", "types"],
  "properties": {
    "columns": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "array",
        "minItems": 1,
        "items": [{"type": "string", "minLength": 1}],
        "additionalItems": {"type": "number"}
      }
    },
    "types": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "names": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "colors": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// LoadFile reads a file holding one chart document or an array of them.
func LoadFile(path string) ([]*Dataset, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return LoadAll(data)
}

// LoadAll parses either a single chart document or an array of chart documents.
func LoadAll(data []byte) ([]*Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		ds, err := Load(data)
		if err != nil {
			return nil, err
		}
		return []*Dataset{ds}, nil
	}

	docs := root.Array()
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: empty chart list", ErrInvalidDocument)
	}
	out := make([]*Dataset, 0, len(docs))
	for i, doc := range docs {
		ds, err := Load([]byte(doc.Raw))
		if err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}
		out = append(out, ds)
	}
	return out, nil
}

// Load parses one chart document:
//
//	{"columns": [["x", 1542412800000, ...], ["y0", 37, ...]],
//	 "types": {"x": "x", "y0": "line"},
//	 "names": {"y0": "#0"},
//	 "colors": {"y0": "#3DC23F"}}
func Load(data []byte) (*Dataset, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	return parseDocument(gjson.ParseBytes(data))
}

func validateDocument(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, e := range result.Errors() {
			msgs[i] = e.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}
	return nil
}

func parseDocument(doc gjson.Result) (*Dataset, error) {
	types := doc.Get("types").Map()
	names := doc.Get("names").Map()
	colors := doc.Get("colors").Map()

	var (
		x       []float64
		haveX   bool
		lines   []*Series
		palette int
	)
	for _, col := range doc.Get("columns").Array() {
		cells := col.Array()
		id := cells[0].String()
		values := make([]float64, 0, len(cells)-1)
		for _, cell := range cells[1:] {
			values = append(values, cell.Float())
		}

		typ, ok := types[id]
		if !ok {
			return nil, fmt.Errorf("%w: column %s has no type", ErrUnknownType, id)
		}
		switch typ.String() {
		case TypeX:
			if haveX {
				return nil, fmt.Errorf("%w: more than one x column", ErrInvalidDocument)
			}
			x, haveX = values, true
		case TypeLine:
			hex := colors[id].String()
			if hex == "" {
				hex = DefaultPalette[palette%len(DefaultPalette)]
				palette++
			}
			s, err := NewSeries(id, names[id].String(), hex, values)
			if err != nil {
				return nil, err
			}
			lines = append(lines, s)
		default:
			return nil, fmt.Errorf("%w: %q for column %s", ErrUnknownType, typ.String(), id)
		}
	}

	if !haveX {
		return nil, ErrMissingX
	}
	return NewDataset(x, lines...)
}
