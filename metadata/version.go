package metadata

import "fmt"

// ABIVersion is the ordered triple stamped into every compiled artifact.
// A reader can decode an artifact when the major versions match and the
// artifact's minor version does not exceed the reader's. Patch versions
// never affect compatibility.
type ABIVersion struct {
	Major int
	Minor int
	Patch int
}

// CurrentABIVersion is the metadata version this reader understands.
var CurrentABIVersion = ABIVersion{Major: 1, Minor: 2, Patch: 0}

// CompatibleWith reports whether metadata at version v can be read by a
// reader at version reader.
func (v ABIVersion) CompatibleWith(reader ABIVersion) bool {
	return v.Major == reader.Major && v.Minor <= reader.Minor
}

// IsCompatible reports compatibility against CurrentABIVersion.
func (v ABIVersion) IsCompatible() bool {
	return v.CompatibleWith(CurrentABIVersion)
}

func (v ABIVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
