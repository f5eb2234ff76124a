package envelope

import (
	"slices"
	"time"

	"github.com/robert-malhotra/go-jsonstat/internal/dtype"
)

// DefaultMaxCells bounds the declared number of cells when Options.MaxCells
// is zero.
const DefaultMaxCells = 50_000_000

// Options configures decoding.
type Options struct {
	// MaxCells rejects envelopes whose dimension sizes multiply to more
	// than this many cells. Zero means DefaultMaxCells.
	MaxCells int
}

// Category is one category of a dimension.
type Category struct {
	ID    string
	Label string
}

// Dimension is the typed form of one entry of the dimension object.
type Dimension struct {
	ID         string
	Label      string
	Size       int
	Categories []Category // ordered by category index
	Role       string     // empty when the dimension has no role
}

// Number is one entry of the value array. Valid is false for null.
type Number struct {
	Value float64
	Valid bool
}

// Envelope is the decoded content of the "dataset" object.
type Envelope struct {
	Label   string
	Source  string
	Updated time.Time // zero when absent

	Dimensions []Dimension
	Roles      map[string][]string // role name -> dimension ids

	Values []Number       // len == product of dimension sizes
	Status map[int]string // offset -> status code
}

// Sizes returns the size of each dimension in order.
func (e *Envelope) Sizes() []int {
	sizes := make([]int, len(e.Dimensions))
	for i, d := range e.Dimensions {
		sizes[i] = d.Size
	}
	return sizes
}

// Decode validates tree and converts it into an Envelope. tree is the
// top-level JSON object, which must hold the dataset under the "dataset" key.
func Decode(tree map[string]any, opts Options) (*Envelope, error) {
	if opts.MaxCells <= 0 {
		opts.MaxCells = DefaultMaxCells
	}

	raw, ok := tree["dataset"]
	if !ok || raw == nil {
		return nil, errorf("/dataset", "field is missing")
	}
	ds, ok := raw.(map[string]any)
	if !ok {
		return nil, errorf("/dataset", "expected object, got %s", dtype.ClassOf(raw))
	}

	env := &Envelope{}
	var err error

	if env.Label, err = optionalString(ds, "label"); err != nil {
		return nil, err
	}
	if env.Source, err = optionalString(ds, "source"); err != nil {
		return nil, err
	}
	if env.Updated, err = decodeUpdated(ds["updated"]); err != nil {
		return nil, err
	}

	if err := decodeDimensions(env, ds["dimension"], opts.MaxCells); err != nil {
		return nil, err
	}

	total := 1
	for _, d := range env.Dimensions {
		total *= d.Size
	}

	if env.Values, err = decodeValues(ds["value"], total); err != nil {
		return nil, err
	}
	if env.Status, err = decodeStatus(ds["status"], total); err != nil {
		return nil, err
	}

	return env, nil
}

func optionalString(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errorf(pointer("dataset", key), "expected string, got %s", dtype.ClassOf(v))
	}
	return s, nil
}

var updatedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func decodeUpdated(v any) (time.Time, error) {
	switch u := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return u, nil
	case string:
		var firstErr error
		for _, layout := range updatedLayouts {
			t, err := time.Parse(layout, u)
			if err == nil {
				return t, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return time.Time{}, wrapf("/dataset/updated", firstErr, "invalid timestamp %q", u)
	default:
		return time.Time{}, errorf("/dataset/updated", "expected string, got %s", dtype.ClassOf(v))
	}
}

// sortedKeys returns the keys of m in ascending order so that error
// reporting does not depend on map iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
