package contents

// Field names a subtype-specific column of the contents table. The
// registry speaks in terms of these fields; the reconstructor maps them
// to the presence of scanned column values.
type Field string

const (
	FieldText          Field = "text"
	FieldSubText       Field = "sub_text"
	FieldTitle         Field = "title"
	FieldStatus        Field = "status"
	FieldOriginalPath  Field = "original_path"
	FieldSize          Field = "size"
	FieldExt           Field = "ext"
	FieldMimeType      Field = "mime_type"
	FieldThumbnailPath Field = "thumbnail_path"
	FieldLargePath     Field = "large_path"
	FieldStartAt       Field = "start_datetime"
	FieldEndAt         Field = "end_datetime"
	FieldIsAllDay      Field = "is_all_day"
)

// variantFields is every column that belongs to some variant. A column
// in this list that is neither required nor optional for a given type is
// forbidden for that type.
var variantFields = []Field{
	FieldText, FieldSubText, FieldTitle, FieldStatus,
	FieldOriginalPath, FieldSize, FieldExt, FieldMimeType,
	FieldThumbnailPath, FieldLargePath,
	FieldStartAt, FieldEndAt, FieldIsAllDay,
}

// FieldSpec is the field contract of one variant: which columns must be
// set, which may be set, and (by complement) which must be NULL.
type FieldSpec struct {
	Required []Field
	Optional []Field
}

// Forbidden returns the variant columns that must be NULL for this spec.
func (s FieldSpec) Forbidden() []Field {
	allowed := make(map[Field]bool, len(s.Required)+len(s.Optional))
	for _, f := range s.Required {
		allowed[f] = true
	}
	for _, f := range s.Optional {
		allowed[f] = true
	}

	var forbidden []Field
	for _, f := range variantFields {
		if !allowed[f] {
			forbidden = append(forbidden, f)
		}
	}
	return forbidden
}

// registry is the closed mapping from discriminant to field contract.
// The base thumbnail is optional for every variant except media, where
// it is promoted to required.
//
// Adding a new content type means adding an entry here, a detail struct
// in content.go, and arms in the reconstruction/serialization switches;
// the compiler and the closure test flush out the switches.
var registry = map[ContentType]FieldSpec{
	TypeSystem: {
		Required: []Field{FieldText},
		Optional: []Field{FieldSubText, FieldThumbnailPath},
	},
	TypeImage: {
		Required: []Field{FieldOriginalPath, FieldSize, FieldExt, FieldMimeType, FieldThumbnailPath},
		Optional: []Field{FieldLargePath},
	},
	TypeVideo: {
		Required: []Field{FieldOriginalPath, FieldSize, FieldExt, FieldMimeType, FieldThumbnailPath},
	},
	TypePost: {
		Required: []Field{FieldTitle, FieldText},
		Optional: []Field{FieldThumbnailPath},
	},
	TypeBucket: {
		Required: []Field{FieldTitle, FieldStatus},
		Optional: []Field{FieldThumbnailPath},
	},
	TypeSchedule: {
		Required: []Field{FieldTitle, FieldEndAt},
		Optional: []Field{FieldStartAt, FieldIsAllDay, FieldThumbnailPath},
	},
}

// FieldsFor returns the field contract for a discriminant. The second
// return is false for discriminants outside the closed set.
func FieldsFor(t ContentType) (FieldSpec, bool) {
	spec, ok := registry[t]
	return spec, ok
}

// Types returns the closed discriminant set in a stable order.
func Types() []ContentType {
	return []ContentType{TypeSystem, TypeImage, TypeVideo, TypePost, TypeBucket, TypeSchedule}
}
