package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SchemaRef is a reference to another registry type. The wire encodes it as
// {"type": {"$ref": "#/$defs/<type path>"}}; a bare {"$ref": ...} object is
// accepted too.
type SchemaRef struct {
	Path TypeName
}

const refPrefix = "#/$defs/"

// UnmarshalJSON decodes either reference form.
func (r *SchemaRef) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Type *struct {
			Ref string `json:"$ref"`
		} `json:"type"`
		Ref string `json:"$ref"`
	}

	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("failed to decode type reference: %w", err)
	}

	ref := wrapped.Ref
	if wrapped.Type != nil {
		ref = wrapped.Type.Ref
	}

	if ref == "" {
		return fmt.Errorf("type reference missing $ref")
	}

	r.Path = TypeName(strings.TrimPrefix(ref, refPrefix))

	return nil
}

// MarshalJSON re-emits the wrapped wire form.
func (r SchemaRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": map[string]string{"$ref": refPrefix + string(r.Path)},
	})
}

// FieldSchema is one named struct field in declaration order.
type FieldSchema struct {
	Name string
	Type SchemaRef
}

// VariantSchema is one enum variant. A unit variant has neither fields nor
// prefix items; a tuple variant carries PrefixItems; a struct variant
// carries Fields.
type VariantSchema struct {
	Name        string
	Fields      []FieldSchema
	PrefixItems []SchemaRef
}

// IsUnit reports whether the variant carries no inner data.
func (v VariantSchema) IsUnit() bool {
	return len(v.Fields) == 0 && len(v.PrefixItems) == 0
}

// IsStruct reports whether the variant carries named fields.
func (v VariantSchema) IsStruct() bool {
	return len(v.Fields) > 0
}

// UnmarshalJSON accepts the wire's mixed encoding: a bare string for unit
// variants, an object with shortPath plus properties or prefixItems
// otherwise.
func (v *VariantSchema) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &v.Name)
	}

	var aux struct {
		ShortPath   string          `json:"shortPath"`
		Properties  json.RawMessage `json:"properties"`
		PrefixItems []SchemaRef     `json:"prefixItems"`
	}

	if err := json.Unmarshal(trimmed, &aux); err != nil {
		return fmt.Errorf("failed to decode variant: %w", err)
	}

	if aux.ShortPath == "" {
		return fmt.Errorf("variant object missing shortPath")
	}

	fields, err := decodeOrderedFields(aux.Properties)
	if err != nil {
		return fmt.Errorf("variant %s: %w", aux.ShortPath, err)
	}

	v.Name = aux.ShortPath
	v.Fields = fields
	v.PrefixItems = aux.PrefixItems

	return nil
}

// TypeSchema is one registry entry. Only the constructs matching the type's
// kind are populated.
type TypeSchema struct {
	TypePath     TypeName
	ShortPath    string
	Kind         TypeKind
	ReflectTypes []string
	// Fields lists struct fields in the order the wire document declares
	// them; child enumeration and assembly both rely on this order.
	Fields      []FieldSchema
	PrefixItems []SchemaRef
	Items       *SchemaRef
	ArraySize   int
	KeyType     *SchemaRef
	ValueType   *SchemaRef
	Variants    []VariantSchema
}

// UnmarshalJSON preserves struct field order, which encoding/json's map
// decoding would destroy.
func (s *TypeSchema) UnmarshalJSON(data []byte) error {
	var aux struct {
		TypePath     TypeName        `json:"typePath"`
		ShortPath    string          `json:"shortPath"`
		Kind         TypeKind        `json:"kind"`
		ReflectTypes []string        `json:"reflectTypes"`
		Properties   json.RawMessage `json:"properties"`
		PrefixItems  []SchemaRef     `json:"prefixItems"`
		Items        *SchemaRef      `json:"items"`
		MaxItems     int             `json:"maxItems"`
		KeyType      *SchemaRef      `json:"keyType"`
		ValueType    *SchemaRef      `json:"valueType"`
		OneOf        []VariantSchema `json:"oneOf"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("failed to decode type schema: %w", err)
	}

	fields, err := decodeOrderedFields(aux.Properties)
	if err != nil {
		return fmt.Errorf("type %s: %w", aux.TypePath, err)
	}

	s.TypePath = aux.TypePath
	s.ShortPath = aux.ShortPath
	s.Kind = aux.Kind
	s.ReflectTypes = aux.ReflectTypes
	s.Fields = fields
	s.PrefixItems = aux.PrefixItems
	s.Items = aux.Items
	s.ArraySize = aux.MaxItems
	s.KeyType = aux.KeyType
	s.ValueType = aux.ValueType
	s.Variants = aux.OneOf

	return nil
}

// HasSerialization reports whether the type declares both read and write
// serialization support.
func (s *TypeSchema) HasSerialization() bool {
	var read, write bool

	for _, rt := range s.ReflectTypes {
		switch rt {
		case "Serialize":
			write = true
		case "Deserialize":
			read = true
		}
	}

	return read && write
}

// decodeOrderedFields walks the raw properties object token by token so the
// resulting field list matches document order.
func decodeOrderedFields(raw json.RawMessage) ([]FieldSchema, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("properties is not an object")
	}

	var fields []FieldSchema

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode property name: %w", err)
		}

		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("property name is not a string")
		}

		var ref SchemaRef
		if err := dec.Decode(&ref); err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}

		fields = append(fields, FieldSchema{Name: name, Type: ref})
	}

	return fields, nil
}

// Registry is the immutable type registry view for one analysis session.
// It is shared by reference across every recursion frame and safe for
// concurrent readers; nothing mutates it after construction.
type Registry struct {
	schemas map[TypeName]*TypeSchema
}

// NewRegistry builds a registry view over the given schemas.
func NewRegistry(schemas map[TypeName]*TypeSchema) *Registry {
	return &Registry{schemas: schemas}
}

// DecodeRegistry parses the wire payload of the registry fetch: a JSON
// object mapping type path to schema.
func DecodeRegistry(data []byte) (*Registry, error) {
	var raw map[TypeName]*TypeSchema

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode registry payload: %w", err)
	}

	for name, schema := range raw {
		if schema.TypePath == "" {
			schema.TypePath = name
		}
	}

	return NewRegistry(raw), nil
}

// Lookup returns the schema for a fully-qualified type name.
func (r *Registry) Lookup(name TypeName) (*TypeSchema, bool) {
	schema, ok := r.schemas[name]

	return schema, ok
}

// Types returns every registered type name, sorted.
func (r *Registry) Types() []TypeName {
	names := make([]TypeName, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.schemas)
}

// Snapshot is a fetched registry payload plus session metadata, persisted
// verbatim so a decode round-trip cannot distort it.
type Snapshot struct {
	SessionID string          `json:"session_id"`
	Endpoint  string          `json:"endpoint"`
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Decode materializes the registry view from the stored payload.
func (s *Snapshot) Decode() (*Registry, error) {
	return DecodeRegistry(s.Payload)
}
