// Package knowledge renders the structured knowledge dump: one record per
// entity with its identity and current attributes. The document is valid YAML,
// but it is rendered by hand because attribute order and the inline
// `instance: ["token", "kind"]` identity form are part of the contract with
// downstream knowledge-base loaders.
package knowledge

import (
	"fmt"
	"strings"
)

// Version identifies the dump grammar. Bump when the record shape changes.
const Version = 1

// EntityID identifies one entity across every emitted format: a unique token
// and the kind (planning type) it instantiates.
type EntityID struct {
	Token string
	Kind  string
}

func (id EntityID) String() string {
	return fmt.Sprintf(`instance: ["%s", "%s"]`, id.Token, id.Kind)
}

// Attribute is a named value on an entity record. Value must be a string,
// bool, int or EntityID reference.
type Attribute struct {
	Name  string
	Value any
}

func (a Attribute) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s- name: %s\n", indent, a.Name)
	switch v := a.Value.(type) {
	case string:
		fmt.Fprintf(b, "%s  value: %q\n", indent, v)
	case EntityID:
		fmt.Fprintf(b, "%s  value:\n%s    %s\n", indent, indent, v)
	case bool:
		fmt.Fprintf(b, "%s  value: %t\n", indent, v)
	case int:
		fmt.Fprintf(b, "%s  value: %d\n", indent, v)
	default:
		panic(fmt.Sprintf("knowledge: unsupported attribute value %T", v))
	}
}

// Record is one entity's entry in the dump.
type Record struct {
	ID         EntityID
	Attributes []Attribute
}

func (r Record) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s- %s\n", indent, r.ID)
	if len(r.Attributes) == 0 {
		return
	}
	fmt.Fprintf(b, "%s  attributes:\n", indent)
	for _, a := range r.Attributes {
		a.render(b, depth+1)
	}
}

// Document is a full dump in traversal order.
type Document struct {
	Records []Record
}

func (d Document) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "version: %d\nentities:\n", Version)
	for _, r := range d.Records {
		r.render(&b, 1)
	}
	return b.String()
}
