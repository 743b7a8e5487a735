package descriptors

import "github.com/loomlang/descriptor-loader/metadata"

// Annotation is a reconstructed annotation application.
type Annotation struct {
	ClassID   metadata.ClassID
	Arguments map[Name]ConstantValue
}

// ConstantValue holds a compile-time constant: int64, float64, string
// or bool. A nil value means "no constant".
type ConstantValue any
