package filter

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// ID identifies a compression filter.
type ID uint8

const (
	None ID = iota
	Gzip
	Zstd
	LZ4
	S2
)

// Filter is the interface implemented by all decompression filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() ID

	// Decode transforms encoded data to decoded form.
	Decode(input []byte) ([]byte, error)
}

// Registry maps filter IDs to filter constructors.
var Registry = map[ID]func() Filter{
	Gzip: func() Filter { return NewGzip() },
	Zstd: func() Filter { return NewZstd() },
	LZ4:  func() Filter { return NewLZ4() },
	S2:   func() Filter { return NewS2() },
}

// filterNames maps filter IDs to their names for error messages.
var filterNames = map[ID]string{
	None: "none",
	Gzip: "gzip",
	Zstd: "zstd",
	LZ4:  "lz4",
	S2:   "s2",
}

func (id ID) String() string {
	if name, ok := filterNames[id]; ok {
		return name
	}
	return fmt.Sprintf("filter(%d)", uint8(id))
}

// extensions maps file suffixes to filters.
var extensions = map[string]ID{
	".gz":   Gzip,
	".gzip": Gzip,
	".zst":  Zstd,
	".zstd": Zstd,
	".lz4":  LZ4,
	".s2":   S2,
	".sz":   S2,
}

// magic lists the stream signatures recognised by Detect.
var magic = []struct {
	id     ID
	prefix []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{S2, []byte("\xff\x06\x00\x00S2sTwO")},
	{S2, []byte("\xff\x06\x00\x00sNaPpY")},
}

// New creates a filter by ID.
func New(id ID) (Filter, error) {
	constructor, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unsupported filter: %s", id)
	}
	return constructor(), nil
}

// Detect identifies the compression of data from its leading bytes.
// It returns None for anything it does not recognise.
func Detect(data []byte) ID {
	for _, m := range magic {
		if bytes.HasPrefix(data, m.prefix) {
			return m.id
		}
	}
	return None
}

// FromExtension returns the filter implied by the file name suffix and the
// name with that suffix removed, so "1052.json.gz" yields (Gzip, "1052.json").
func FromExtension(name string) (ID, string) {
	ext := strings.ToLower(filepath.Ext(name))
	if id, ok := extensions[ext]; ok {
		return id, strings.TrimSuffix(name, filepath.Ext(name))
	}
	return None, name
}
