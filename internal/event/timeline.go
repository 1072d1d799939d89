package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Timeline is the on-disk representation of a recorded event sequence.
// JSON is the interchange format; YAML is accepted for hand-written
// scenario files.
type Timeline struct {
	Version int     `json:"version,omitempty" yaml:"version,omitempty"`
	Events  []Event `json:"events" yaml:"events"`
}

// TimelineVersion is the current timeline schema version.
const TimelineVersion = 1

//go:embed timeline-v1.schema.json
var timelineSchemaJSON string

var timelineSchema = jsonschema.MustCompileString(
	"timeline-v1.schema.json", timelineSchemaJSON)

// LoadTimeline reads a timeline file, validates it against the embedded
// schema, and returns the contained events as a validated Sequence.
// The format is chosen by extension: .json, .yaml, or .yml.
func LoadTimeline(path string) (Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sequence{}, fmt.Errorf("read timeline: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseTimeline(bytes.NewReader(data))
	case ".yaml", ".yml":
		jsonData, err := yamlToJSON(data)
		if err != nil {
			return Sequence{}, fmt.Errorf("parse timeline %s: %w", path, err)
		}
		return ParseTimeline(bytes.NewReader(jsonData))
	default:
		return Sequence{}, fmt.Errorf("timeline %s: unsupported extension (want .json, .yaml, or .yml)", path)
	}
}

// ParseTimeline decodes and schema-validates a JSON timeline.
func ParseTimeline(r io.Reader) (Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Sequence{}, err
	}

	// Schema validation runs on the generic decoding so malformed files
	// are rejected with field-level messages before any struct mapping.
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return Sequence{}, fmt.Errorf("parse timeline: %w", err)
	}
	if err := timelineSchema.Validate(generic); err != nil {
		return Sequence{}, fmt.Errorf("timeline schema: %w", err)
	}

	var tl Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return Sequence{}, fmt.Errorf("parse timeline: %w", err)
	}
	return NewSequence(tl.Events)
}

// WriteTimeline serializes a sequence as a JSON timeline.
func WriteTimeline(w io.Writer, seq Sequence) error {
	tl := Timeline{Version: TimelineVersion, Events: seq.Events()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tl)
}

// yamlToJSON re-encodes YAML as JSON so the same schema validation path
// applies to both formats.
func yamlToJSON(data []byte) ([]byte, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
