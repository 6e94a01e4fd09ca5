package archive

import (
	"encoding/hex"
	"fmt"
	"os"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/google/uuid"

	"github.com/kiwi-machine/assetgen/internal/errs"
)

// Index describes the members of one package.
//
// Wire layout (FlatBuffers, no schema file):
//
//	table PackageIndex { package:string; id:string; entries:[Entry]; }
//	table Entry { name:string; size:ulong; digest:[ubyte]; }
type Index struct {
	Package string
	ID      uuid.UUID
	Entries []IndexEntry
}

// IndexEntry is one member record. Digest is BLAKE3-256.
type IndexEntry struct {
	Name   string
	Size   int64
	Digest []byte
}

// DigestHex is the hex form of the entry digest.
func (e IndexEntry) DigestHex() string {
	return hex.EncodeToString(e.Digest)
}

// vtable slots
const (
	slotIndexPackage = 0
	slotIndexID      = 1
	slotIndexEntries = 2

	slotEntryName   = 0
	slotEntrySize   = 1
	slotEntryDigest = 2
)

// Marshal encodes idx.
func (idx *Index) Marshal() []byte {
	b := flatbuffers.NewBuilder(1024)

	entryOffsets := make([]flatbuffers.UOffsetT, len(idx.Entries))
	for i, e := range idx.Entries {
		name := b.CreateString(e.Name)
		digest := b.CreateByteVector(e.Digest)
		b.StartObject(3)
		b.PrependUOffsetTSlot(slotEntryName, name, 0)
		b.PrependUint64Slot(slotEntrySize, uint64(e.Size), 0)
		b.PrependUOffsetTSlot(slotEntryDigest, digest, 0)
		entryOffsets[i] = b.EndObject()
	}

	b.StartVector(flatbuffers.SizeUOffsetT, len(entryOffsets), flatbuffers.SizeUOffsetT)
	for i := len(entryOffsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(entryOffsets[i])
	}
	entries := b.EndVector(len(entryOffsets))

	pkg := b.CreateString(idx.Package)
	id := b.CreateString(idx.ID.String())

	b.StartObject(3)
	b.PrependUOffsetTSlot(slotIndexPackage, pkg, 0)
	b.PrependUOffsetTSlot(slotIndexID, id, 0)
	b.PrependUOffsetTSlot(slotIndexEntries, entries, 0)
	b.Finish(b.EndObject())
	return b.FinishedBytes()
}

// UnmarshalIndex decodes an index produced by Marshal.
func UnmarshalIndex(buf []byte) (idx *Index, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("%w: index too short", errs.ErrMalformedInput)
	}
	// Out-of-range offsets in a damaged buffer panic inside the flatbuffers accessors.
	defer func() {
		if r := recover(); r != nil {
			idx, err = nil, fmt.Errorf("%w: corrupt index: %v", errs.ErrMalformedInput, r)
		}
	}()

	root := &flatbuffers.Table{Bytes: buf, Pos: flatbuffers.GetUOffsetT(buf)}
	idx = &Index{Package: tableString(root, slotIndexPackage)}
	if idx.ID, err = uuid.Parse(tableString(root, slotIndexID)); err != nil {
		return nil, fmt.Errorf("%w: index package id: %v", errs.ErrMalformedInput, err)
	}

	if o := flatbuffers.UOffsetT(root.Offset(slotOffset(slotIndexEntries))); o != 0 {
		n := root.VectorLen(o)
		start := root.Vector(o)
		idx.Entries = make([]IndexEntry, n)
		for i := 0; i < n; i++ {
			pos := root.Indirect(start + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT)
			t := &flatbuffers.Table{Bytes: buf, Pos: pos}
			e := IndexEntry{Name: tableString(t, slotEntryName)}
			if so := flatbuffers.UOffsetT(t.Offset(slotOffset(slotEntrySize))); so != 0 {
				e.Size = int64(t.GetUint64(so + t.Pos))
			}
			if do := flatbuffers.UOffsetT(t.Offset(slotOffset(slotEntryDigest))); do != 0 {
				e.Digest = append([]byte(nil), t.ByteVector(do+t.Pos)...)
			}
			idx.Entries[i] = e
		}
	}
	return idx, nil
}

func slotOffset(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(4 + 2*slot)
}

func tableString(t *flatbuffers.Table, slot int) string {
	if o := flatbuffers.UOffsetT(t.Offset(slotOffset(slot))); o != 0 {
		return t.String(o + t.Pos)
	}
	return ""
}

// WriteIndex writes idx to path.
func WriteIndex(path string, idx *Index) error {
	if err := os.WriteFile(path, idx.Marshal(), 0644); err != nil {
		return fmt.Errorf("%w: write index %s: %v", errs.ErrIO, path, err)
	}
	return nil
}

// ReadIndex reads the index at path.
func ReadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: index %s", errs.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("%w: read index %s: %v", errs.ErrIO, path, err)
	}
	idx, err := UnmarshalIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}
