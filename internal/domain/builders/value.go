package builders

import (
	"strings"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// Value handles opaque leaf types. It has no children; the example is the
// type's own literal representative, available only when the type declares
// serialization support.
type Value struct{}

// Children returns no children; a leaf without serialization support is a
// typed failure.
func (b *Value) Children(schema *m.TypeSchema) ([]Child, error) {
	if !schema.HasSerialization() {
		return nil, MissingSerialization(schema.TypePath)
	}

	return nil, nil
}

// Assemble returns the literal example for the leaf type.
func (b *Value) Assemble(schema *m.TypeSchema, _ []ChildResult) (any, error) {
	return LiteralExample(schema.TypePath), nil
}

// LiteralExample produces a representative JSON value for a primitive or
// opaque type. Unrecognized types get null, which serializes but makes no
// claim about shape.
func LiteralExample(t m.TypeName) any {
	name := string(t)

	switch {
	case name == "f32" || name == "f64":
		return 3.14
	case name == "bool":
		return true
	case name == "char":
		return "a"
	case isSignedInt(name):
		return -42
	case isUnsignedInt(name):
		return 42
	case isStringLike(name):
		return "example string"
	default:
		return nil
	}
}

func isSignedInt(name string) bool {
	switch name {
	case "i8", "i16", "i32", "i64", "i128", "isize":
		return true
	}

	return false
}

func isUnsignedInt(name string) bool {
	switch name {
	case "u8", "u16", "u32", "u64", "u128", "usize":
		return true
	}

	return false
}

func isStringLike(name string) bool {
	if name == "str" || name == "alloc::string::String" {
		return true
	}

	return strings.HasPrefix(name, "alloc::borrow::Cow<")
}

// handlePrefixes lists reference-style wrapper types whose inner
// representation cannot be meaningfully mutated over the wire.
var handlePrefixes = []string{
	"bevy_asset::handle::Handle<",
	"bevy_asset::id::AssetId<",
	"bevy_ecs::entity::Entity",
}

// IsHandleType reports whether t is a non-mutable reference handle.
func IsHandleType(t m.TypeName) bool {
	name := string(t)

	for _, prefix := range handlePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}
