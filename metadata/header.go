package metadata

import (
	"errors"
	"os"

	"github.com/loomlang/descriptor-loader/metadata/internal/binary"
)

// Magic identifies a loom metadata container ("LMD1" little endian).
const Magic uint32 = 0x31444D4C

// ErrInvalidMagic is returned when a container does not start with Magic.
var ErrInvalidMagic = errors.New("invalid metadata magic number")

// Header is the typed description of a compiled entity, read before any
// full decoding. Immutable once read.
type Header struct {
	Kind    Kind
	Version ABIVersion
	Payload []byte
}

// IsCompatible reports whether the payload may be decoded by this reader.
func (h Header) IsCompatible() bool {
	return h.Version.IsCompatible()
}

// BinaryClass is an opaque handle to one compiled entity. Handles are
// created by classpath discovery, are immutable, and live for the whole
// compilation session.
type BinaryClass interface {
	// ID returns the entity's identifier.
	ID() ClassID
	// ClassHeader returns the entity's header.
	ClassHeader() Header
}

// FileClass is a BinaryClass backed by a metadata container blob.
type FileClass struct {
	id     ClassID
	header Header
}

func (f *FileClass) ID() ClassID         { return f.id }
func (f *FileClass) ClassHeader() Header { return f.header }

// ParseBinaryClass parses a metadata container. The payload is not
// decoded; callers gate on kind and ABI compatibility first.
func ParseBinaryClass(data []byte) (*FileClass, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("magic", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	kind, err := r.ReadByte()
	if err != nil {
		return nil, r.WrapError("kind", err)
	}

	var version ABIVersion
	for _, p := range []*int{&version.Major, &version.Minor, &version.Patch} {
		v, err := r.ReadU32()
		if err != nil {
			return nil, r.WrapError("abi version", err)
		}
		*p = int(v)
	}

	name, err := r.ReadName()
	if err != nil {
		return nil, r.WrapError("entity name", err)
	}

	payload, err := r.ReadRemaining()
	if err != nil {
		return nil, r.WrapError("payload", err)
	}

	k := Kind(kind)
	if int(kind) >= len(kindNames) {
		k = KindUnknown
	}

	return &FileClass{
		id: ParseClassID(name),
		header: Header{
			Kind:    k,
			Version: version,
			Payload: payload,
		},
	}, nil
}

// OpenFile reads and parses a metadata container from disk.
func OpenFile(path string) (*FileClass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBinaryClass(data)
}

// EncodeBinaryClass produces a container blob for the given entity.
// Used by tests and tooling; the compiler back end has its own writer.
func EncodeBinaryClass(id ClassID, kind Kind, version ABIVersion, payload []byte) []byte {
	w := binary.NewWriter()
	w.WriteU32LE(Magic)
	w.Byte(byte(kind))
	w.WriteU32(uint32(version.Major))
	w.WriteU32(uint32(version.Minor))
	w.WriteU32(uint32(version.Patch))
	w.WriteName(id.String())
	w.WriteBytes(payload)
	return w.Bytes()
}
