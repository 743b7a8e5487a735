package metadata

// NameResolver maps string-table indices from a decoded payload to
// textual names and class identifiers.
type NameResolver struct {
	strings []string
}

// NewNameResolver creates a resolver over a payload's string table.
func NewNameResolver(strings []string) *NameResolver {
	return &NameResolver{strings: strings}
}

// String resolves a string-table index.
func (n *NameResolver) String(index uint32) (string, bool) {
	if int(index) >= len(n.strings) {
		return "", false
	}
	return n.strings[index], true
}

// ClassID resolves a string-table index holding a class identifier in
// its textual form.
func (n *NameResolver) ClassID(index uint32) (ClassID, bool) {
	s, ok := n.String(index)
	if !ok {
		return ClassID{}, false
	}
	return ParseClassID(s), true
}

// Len returns the string table size.
func (n *NameResolver) Len() int {
	return len(n.strings)
}
