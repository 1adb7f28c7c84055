package model

import "strconv"

// TypeKind is the structural kind of a registry type. The values match the
// "kind" field of the wire schema so they decode directly.
type TypeKind string

const (
	// KindStruct represents a named-field struct.
	KindStruct TypeKind = "Struct"
	// KindEnum represents a sum type with unit, tuple or struct variants.
	KindEnum TypeKind = "Enum"
	// KindTuple represents an anonymous positional tuple.
	KindTuple TypeKind = "Tuple"
	// KindTupleStruct represents a named type with positional elements.
	KindTupleStruct TypeKind = "TupleStruct"
	// KindArray represents a fixed-size sequence.
	KindArray TypeKind = "Array"
	// KindList represents a variable-size sequence.
	KindList TypeKind = "List"
	// KindMap represents a key/value container.
	KindMap TypeKind = "Map"
	// KindSet represents an unordered membership container.
	KindSet TypeKind = "Set"
	// KindValue represents an opaque leaf; mutability depends solely on the
	// type's declared serialization support.
	KindValue TypeKind = "Value"
)

// PathKindTag discriminates how a mutation path was reached.
type PathKindTag string

const (
	// TagRootValue marks the root of a traversal.
	TagRootValue PathKindTag = "root_value"
	// TagStructField marks a named struct (or struct-variant) field.
	TagStructField PathKindTag = "struct_field"
	// TagIndexedElement marks a tuple or tuple-variant position.
	TagIndexedElement PathKindTag = "indexed_element"
	// TagArrayElement marks a fixed or variable sequence position.
	TagArrayElement PathKindTag = "array_element"
)

// PathKind describes one path step: the tag, the type it resolves to, and
// enough parent information to regenerate the segment and to look up
// field-specific knowledge overrides.
type PathKind struct {
	Tag    PathKindTag `json:"kind"`
	Type   TypeName    `json:"type"`
	Parent TypeName    `json:"parent_type,omitempty"`
	Field  string      `json:"field_name,omitempty"`
	Index  int         `json:"index,omitempty"`
}

// RootValue builds the PathKind for a traversal root.
func RootValue(t TypeName) PathKind {
	return PathKind{Tag: TagRootValue, Type: t}
}

// StructField builds the PathKind for a named field of parent.
func StructField(field string, t, parent TypeName) PathKind {
	return PathKind{Tag: TagStructField, Type: t, Parent: parent, Field: field}
}

// IndexedElement builds the PathKind for a tuple position of parent.
func IndexedElement(index int, t, parent TypeName) PathKind {
	return PathKind{Tag: TagIndexedElement, Type: t, Parent: parent, Index: index}
}

// ArrayElement builds the PathKind for a sequence position of parent.
func ArrayElement(index int, t, parent TypeName) PathKind {
	return PathKind{Tag: TagArrayElement, Type: t, Parent: parent, Index: index}
}

// Segment renders this step's contribution to the path string: "" for the
// root, ".field" for struct fields, ".N" for tuple positions and "[N]" for
// sequence positions. Segments compose left-to-right matching nesting depth.
func (p PathKind) Segment() string {
	switch p.Tag {
	case TagStructField:
		return "." + p.Field
	case TagIndexedElement:
		return "." + strconv.Itoa(p.Index)
	case TagArrayElement:
		return "[" + strconv.Itoa(p.Index) + "]"
	default:
		return ""
	}
}
