package codec

import "encoding/json"

// JSON is the standard-library JSON codec.
//
// Use this when portability matters more than encode/decode speed. Snapshots
// are self-describing (they store the codec name in their header), so files
// written with JSON remain readable regardless of the configured default.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for newly written snapshots.
var Default Codec = GoJSON{}
