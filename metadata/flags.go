package metadata

// ClassKind is the kind of a class declaration.
type ClassKind uint8

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindObject
	ClassKindEnum
	ClassKindAnnotation
)

var classKindNames = [...]string{
	ClassKindClass:      "class",
	ClassKindInterface:  "interface",
	ClassKindObject:     "object",
	ClassKindEnum:       "enum",
	ClassKindAnnotation: "annotation",
}

func (k ClassKind) String() string {
	if int(k) < len(classKindNames) {
		return classKindNames[k]
	}
	return "class"
}

// Visibility of a declaration.
type Visibility uint8

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
	VisibilityProtected
	VisibilityInternal
	VisibilityLocal
)

var visibilityNames = [...]string{
	VisibilityPublic:    "public",
	VisibilityPrivate:   "private",
	VisibilityProtected: "protected",
	VisibilityInternal:  "internal",
	VisibilityLocal:     "local",
}

func (v Visibility) String() string {
	if int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return "public"
}

// Modality of a declaration.
type Modality uint8

const (
	ModalityFinal Modality = iota
	ModalityOpen
	ModalityAbstract
	ModalitySealed
)

var modalityNames = [...]string{
	ModalityFinal:    "final",
	ModalityOpen:     "open",
	ModalityAbstract: "abstract",
	ModalitySealed:   "sealed",
}

func (m Modality) String() string {
	if int(m) < len(modalityNames) {
		return modalityNames[m]
	}
	return "final"
}

// Variance of a type parameter or type argument projection.
type Variance uint8

const (
	VarianceInvariant Variance = iota
	VarianceIn
	VarianceOut
)

var varianceNames = [...]string{
	VarianceInvariant: "",
	VarianceIn:        "in",
	VarianceOut:       "out",
}

func (v Variance) String() string {
	if int(v) < len(varianceNames) {
		return varianceNames[v]
	}
	return ""
}

// Flags packs the modifier word carried by class and member records.
//
//	bits 0..2  class kind
//	bits 3..5  visibility
//	bits 6..7  modality
//	bit  8     var property
//	bit  9     vararg parameter
//	bit  10    reified type parameter
//	bit  11    secondary constructor
type Flags uint32

func (f Flags) ClassKind() ClassKind {
	k := ClassKind(f & 0x7)
	if int(k) >= len(classKindNames) {
		return ClassKindClass
	}
	return k
}

func (f Flags) Visibility() Visibility {
	v := Visibility(f >> 3 & 0x7)
	if int(v) >= len(visibilityNames) {
		return VisibilityPublic
	}
	return v
}

func (f Flags) Modality() Modality {
	return Modality(f >> 6 & 0x3)
}

func (f Flags) IsVar() bool       { return f&(1<<8) != 0 }
func (f Flags) IsVararg() bool    { return f&(1<<9) != 0 }
func (f Flags) IsReified() bool   { return f&(1<<10) != 0 }
func (f Flags) IsSecondary() bool { return f&(1<<11) != 0 }

// PackFlags assembles a modifier word. Boolean modifiers are set with Or.
func PackFlags(kind ClassKind, visibility Visibility, modality Modality) Flags {
	return Flags(kind&0x7) | Flags(visibility&0x7)<<3 | Flags(modality&0x3)<<6
}

const (
	FlagVar       Flags = 1 << 8
	FlagVararg    Flags = 1 << 9
	FlagReified   Flags = 1 << 10
	FlagSecondary Flags = 1 << 11
)
