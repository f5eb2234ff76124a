package jsonstat

import (
	"encoding/binary"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/robert-malhotra/go-jsonstat/internal/envelope"
	"github.com/robert-malhotra/go-jsonstat/internal/layout"
)

// Dataset is an immutable JSON-stat dataset: the dimension list, the
// row-major codec over it and one value per cell. It is safe for
// concurrent use by multiple goroutines.
type Dataset struct {
	label   string
	source  string
	updated time.Time

	dims  []Dimension
	roles map[string][]string

	codec  *layout.RowMajor
	cells  []Value        // indexed by linear offset
	status map[int]string // raw status codes, including those of numeric cells

	fingerprint uint64
	opts        *options
}

// New builds a Dataset from a parsed JSON-stat document. tree is the
// top-level object holding the dataset under the "dataset" key, as produced
// by decoding JSON or YAML into map[string]any.
//
// Every shape problem fails with ErrMalformedDataset; no partial Dataset is
// ever returned.
func New(tree map[string]any, opts ...Option) (*Dataset, error) {
	return newDataset(tree, applyOptions(opts))
}

func newDataset(tree map[string]any, o *options) (*Dataset, error) {
	start := time.Now()

	if tree == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrMalformedDataset)
	}

	env, err := envelope.Decode(tree, envelope.Options{MaxCells: o.maxCells})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}

	ds, err := build(env, o)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("dataset built",
		"label", ds.label,
		"dimensions", len(ds.dims),
		"cells", len(ds.cells),
		"elapsed", time.Since(start))

	return ds, nil
}

// build materializes one cell per linear offset.
func build(env *envelope.Envelope, o *options) (*Dataset, error) {
	codec, err := layout.New(env.Sizes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	if codec.NumElements() != len(env.Values) {
		return nil, fmt.Errorf("%w: %d values, dimension sizes declare %d cells",
			ErrMalformedDataset, len(env.Values), codec.NumElements())
	}

	ds := &Dataset{
		label:   env.Label,
		source:  env.Source,
		updated: env.Updated,
		dims:    make([]Dimension, len(env.Dimensions)),
		roles:   env.Roles,
		codec:   codec,
		cells:   make([]Value, len(env.Values)),
		status:  env.Status,
		opts:    o,
	}

	for i, d := range env.Dimensions {
		ds.dims[i] = Dimension{
			ID:         d.ID,
			Label:      d.Label,
			Role:       d.Role,
			Index:      i,
			categories: d.Categories,
		}
	}

	for off, n := range env.Values {
		if n.Valid {
			ds.cells[off] = NumberValue(n.Value)
			continue
		}
		// An empty status code is still a status.
		if code, ok := env.Status[off]; ok {
			ds.cells[off] = StatusValue(code)
			continue
		}
		ds.cells[off] = MissingValue()
	}

	ds.fingerprint = fingerprint(env)
	return ds, nil
}

// Label returns the dataset label, or "" if the document has none.
func (d *Dataset) Label() string {
	return d.label
}

// Source returns the dataset source, or "" if the document has none.
func (d *Dataset) Source() string {
	return d.source
}

// Updated returns the update timestamp. It is the zero time when the
// document has none.
func (d *Dataset) Updated() time.Time {
	return d.updated
}

// NumCells returns the number of cells, the product of all dimension sizes.
func (d *Dataset) NumCells() int {
	return len(d.cells)
}

// Strides returns the row-major stride of each dimension.
func (d *Dataset) Strides() []int {
	return d.codec.Strides()
}

// Fingerprint returns a 64-bit hash of the dataset content: dimension ids,
// sizes, category ids, values and status codes. Datasets with equal content
// have equal fingerprints regardless of how their documents were laid out.
func (d *Dataset) Fingerprint() uint64 {
	return d.fingerprint
}

func fingerprint(env *envelope.Envelope) uint64 {
	h := xxhash.New()
	var buf [8]byte

	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(uint64(len(s)))
		h.WriteString(s)
	}

	writeInt(uint64(len(env.Dimensions)))
	for _, dim := range env.Dimensions {
		writeString(dim.ID)
		writeInt(uint64(dim.Size))
		for _, c := range dim.Categories {
			writeString(c.ID)
		}
	}

	for _, n := range env.Values {
		if !n.Valid {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte{1})
		writeInt(math.Float64bits(n.Value))
	}

	for _, off := range slices.Sorted(maps.Keys(env.Status)) {
		writeInt(uint64(off))
		writeString(env.Status[off])
	}

	return h.Sum64()
}
