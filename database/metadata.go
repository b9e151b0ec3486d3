package database

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// DatabaseSpec is a data source mentioned in a session's conversation.
type DatabaseSpec struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Config map[string]any `json:"config,omitempty"`
}

// SessionMetadata is the typed view of an automation session's metadata
// column. The four known keys are always present as arrays once encoded;
// every other key found in storage is carried through Extra untouched.
type SessionMetadata struct {
	Requirements []string
	Constraints  []string
	TechStack    []string
	Databases    []DatabaseSpec
	Extra        map[string]json.RawMessage
}

const (
	metaRequirements = "requirements"
	metaConstraints  = "constraints"
	metaTechStack    = "techStack"
	metaDatabases    = "databases"
)

func EmptyMetadata() SessionMetadata {
	return SessionMetadata{
		Requirements: []string{},
		Constraints:  []string{},
		TechStack:    []string{},
		Databases:    []DatabaseSpec{},
	}
}

func (m SessionMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+4)
	for k, v := range m.Extra {
		out[k] = v
	}
	out[metaRequirements] = nonNil(m.Requirements)
	out[metaConstraints] = nonNil(m.Constraints)
	out[metaTechStack] = nonNil(m.TechStack)
	if m.Databases == nil {
		out[metaDatabases] = []DatabaseSpec{}
	} else {
		out[metaDatabases] = m.Databases
	}
	return json.Marshal(out)
}

// UnmarshalJSON never fails on shape problems: a known key holding the
// wrong type decodes as an empty list. Only syntactically broken JSON errors.
func (m *SessionMetadata) UnmarshalJSON(data []byte) error {
	*m = EmptyMetadata()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var probe any
		if json.Unmarshal(data, &probe) == nil {
			// valid JSON that is not an object (null, array, ...)
			return nil
		}
		return err
	}

	for k, v := range raw {
		switch k {
		case metaRequirements:
			m.Requirements = StringList(v)
		case metaConstraints:
			m.Constraints = StringList(v)
		case metaTechStack:
			m.TechStack = StringList(v)
		case metaDatabases:
			m.Databases = databaseList(v)
		default:
			if m.Extra == nil {
				m.Extra = map[string]json.RawMessage{}
			}
			m.Extra[k] = v
		}
	}
	return nil
}

// DecodeSessionMetadata reads a stored metadata blob. Corrupt or missing
// blobs yield empty metadata rather than an error.
func DecodeSessionMetadata(blob datatypes.JSON) SessionMetadata {
	if len(blob) == 0 {
		return EmptyMetadata()
	}
	m := EmptyMetadata()
	if err := json.Unmarshal(blob, &m); err != nil {
		return EmptyMetadata()
	}
	return m
}

func (m SessionMetadata) Encode() (datatypes.JSON, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// StringList keeps the string elements of a JSON array and drops the rest.
// Anything that is not an array becomes an empty list.
func StringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			out = append(out, s)
		}
	}
	return out
}

func databaseList(raw json.RawMessage) []DatabaseSpec {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []DatabaseSpec{}
	}
	out := make([]DatabaseSpec, 0, len(items))
	for _, item := range items {
		var spec DatabaseSpec
		if json.Unmarshal(item, &spec) != nil || spec.Name == "" {
			continue
		}
		out = append(out, spec)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
