package knowledge

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrBadVersion  = errors.New("unsupported knowledge version")
	ErrBadIdentity = errors.New("malformed entity identity")
)

// ParsedAttribute is the read-side view of an attribute. Exactly one of the
// typed accessors applies depending on what the dump held.
type ParsedAttribute struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// Ref returns the attribute value as an entity reference, if it is one.
func (a ParsedAttribute) Ref() (EntityID, bool) {
	m, ok := a.Value.(map[string]any)
	if !ok {
		return EntityID{}, false
	}
	return identityFrom(m["instance"])
}

// ParsedRecord is the read-side view of one entity record.
type ParsedRecord struct {
	ID         EntityID
	Attributes []ParsedAttribute
}

// Attribute returns the first attribute with the given name.
func (r ParsedRecord) Attribute(name string) (ParsedAttribute, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return ParsedAttribute{}, false
}

// ParsedDocument is a re-read dump, used by verification and tests.
type ParsedDocument struct {
	Version int
	Records []ParsedRecord
}

// Record returns the record for the given token.
func (d *ParsedDocument) Record(token string) (ParsedRecord, bool) {
	for _, r := range d.Records {
		if r.ID.Token == token {
			return r, true
		}
	}
	return ParsedRecord{}, false
}

type yamlDocument struct {
	Version  int          `yaml:"version"`
	Entities []yamlEntity `yaml:"entities"`
}

type yamlEntity struct {
	Instance   []string          `yaml:"instance"`
	Attributes []ParsedAttribute `yaml:"attributes"`
}

// Parse reads a dump produced by Document.Render.
func Parse(data []byte) (*ParsedDocument, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing knowledge document: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, doc.Version)
	}
	parsed := &ParsedDocument{Version: doc.Version}
	for _, e := range doc.Entities {
		if len(e.Instance) != 2 {
			return nil, fmt.Errorf("%w: %v", ErrBadIdentity, e.Instance)
		}
		parsed.Records = append(parsed.Records, ParsedRecord{
			ID:         EntityID{Token: e.Instance[0], Kind: e.Instance[1]},
			Attributes: e.Attributes,
		})
	}
	return parsed, nil
}

func identityFrom(value any) (EntityID, bool) {
	list, ok := value.([]any)
	if !ok || len(list) != 2 {
		return EntityID{}, false
	}
	token, ok1 := list[0].(string)
	kind, ok2 := list[1].(string)
	if !ok1 || !ok2 {
		return EntityID{}, false
	}
	return EntityID{Token: token, Kind: kind}, true
}
