package metadata

// Kind discriminates what a compiled artifact contains.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindClass
	KindPackageFacade
	KindMultifilePart
	KindSynthetic
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindClass:         "class",
	KindPackageFacade: "package facade",
	KindMultifilePart: "multifile part",
	KindSynthetic:     "synthetic",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// HasPayload reports whether artifacts of this kind carry decodable metadata.
func (k Kind) HasPayload() bool {
	return k == KindClass || k == KindPackageFacade
}
