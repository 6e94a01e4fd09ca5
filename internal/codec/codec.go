// Package codec compresses embedded payloads.
//
// Tags are written into generated source as the Compression enumerator of a
// payload, so their numeric values must stay stable.
package codec

import (
	"errors"
	"fmt"
)

// Tag identifies a payload compression algorithm.
type Tag uint8

const (
	None  Tag = 0
	LZ4   Tag = 1
	Zstd  Tag = 2
	Bzip2 Tag = 3
)

// errIncompressible is returned by a compressor whose output would not be
// smaller than its input.
var errIncompressible = errors.New("data is incompressible")

func (t Tag) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	case Bzip2:
		return "bzip2"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// Enumerator is the C++ enumerator name of t in the support header.
func (t Tag) Enumerator() string {
	switch t {
	case LZ4:
		return "Compression::kLZ4"
	case Zstd:
		return "Compression::kZstd"
	case Bzip2:
		return "Compression::kBzip2"
	default:
		return "Compression::kNone"
	}
}

// ParseTag parses a tag name. The empty string means None.
func ParseTag(name string) (Tag, error) {
	switch name {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	case "bzip2":
		return Bzip2, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (allowed: none, lz4, zstd, bzip2)", name)
	}
}

// Compress compresses data with tag. When the result would not be smaller,
// data is returned unchanged tagged None.
func Compress(data []byte, tag Tag) ([]byte, Tag, error) {
	var (
		out []byte
		err error
	)
	switch tag {
	case None:
		return data, None, nil
	case LZ4:
		out, err = compressLZ4(data)
	case Zstd:
		out, err = compressZstd(data)
	case Bzip2:
		out, err = compressBzip2(data)
	default:
		return nil, None, fmt.Errorf("unsupported compression tag: %d", tag)
	}
	if errors.Is(err, errIncompressible) {
		return data, None, nil
	}
	if err != nil {
		return nil, None, err
	}
	return out, tag, nil
}

// Decompress reverses Compress. rawSize must match the uncompressed length.
func Decompress(data []byte, tag Tag, rawSize int) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch tag {
	case None:
		out = data
	case LZ4:
		out, err = decompressLZ4(data, rawSize)
	case Zstd:
		out, err = decompressZstd(data, rawSize)
	case Bzip2:
		out, err = decompressBzip2(data)
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
	if err != nil {
		return nil, err
	}
	if len(out) != rawSize {
		return nil, fmt.Errorf("%s decompress: got %d bytes, expected %d", tag, len(out), rawSize)
	}
	return out, nil
}
