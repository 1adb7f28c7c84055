package builders

import (
	"strings"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// VariantGroup is a set of enum variants sharing one structural signature:
// the same shape and, for struct variants, identical field names matched
// one-to-one with identical types. One representative example is built per
// group and attached to every member.
type VariantGroup struct {
	// Signature is the human-readable signature string, rendered with
	// short type names.
	Signature string
	// Representative is the first variant carrying the signature; its
	// inner types are the ones recursed into.
	Representative m.VariantSchema
	// Members lists the fully-qualified labels of every variant in the
	// group, in declaration order.
	Members []string
}

// GroupVariants partitions an enum's variants into signature groups. The
// union of all groups' members equals the full variant set and the member
// lists are pairwise disjoint; group order is first-appearance order.
//
// Grouping keys use fully-qualified type paths and, for struct variants,
// field names. Matching struct variants on field types alone is wrong: two
// same-shaped variants with different field names must not share an
// example, or field values bleed into the wrong variant.
func GroupVariants(enum m.TypeName, variants []m.VariantSchema) []VariantGroup {
	var groups []VariantGroup

	index := make(map[string]int)

	for _, variant := range variants {
		key := groupKey(variant)

		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi

			groups = append(groups, VariantGroup{
				Signature:      signatureString(variant),
				Representative: variant,
			})
		}

		groups[gi].Members = append(groups[gi].Members, enum.Variant(variant.Name))
	}

	return groups
}

// groupKey builds the exact-match grouping key from full type paths.
func groupKey(variant m.VariantSchema) string {
	switch {
	case variant.IsStruct():
		var b strings.Builder

		b.WriteString("struct{")

		for i, field := range variant.Fields {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteString(field.Name)
			b.WriteByte(':')
			b.WriteString(string(field.Type.Path))
		}

		b.WriteByte('}')

		return b.String()
	case variant.IsUnit():
		return "unit"
	default:
		var b strings.Builder

		b.WriteString("tuple(")

		for i, item := range variant.PrefixItems {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteString(string(item.Path))
		}

		b.WriteByte(')')

		return b.String()
	}
}

// signatureString renders the display signature with short type names.
func signatureString(variant m.VariantSchema) string {
	switch {
	case variant.IsStruct():
		parts := make([]string, 0, len(variant.Fields))

		for _, field := range variant.Fields {
			parts = append(parts, field.Name+": "+field.Type.Path.Short())
		}

		return "struct{" + strings.Join(parts, ", ") + "}"
	case variant.IsUnit():
		return "unit"
	default:
		parts := make([]string, 0, len(variant.PrefixItems))

		for _, item := range variant.PrefixItems {
			parts = append(parts, item.Path.Short())
		}

		return "tuple(" + strings.Join(parts, ", ") + ")"
	}
}
