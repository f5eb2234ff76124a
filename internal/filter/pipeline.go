package filter

import (
	"fmt"
)

// maxLayers bounds how many nested compression layers Sniff will peel off.
const maxLayers = 4

// Pipeline represents a sequence of filters that can decode file data.
type Pipeline struct {
	filters []Filter
}

// NewPipeline creates a pipeline from filter IDs listed in the order the
// data was encoded. None entries are ignored.
func NewPipeline(ids ...ID) (*Pipeline, error) {
	p := &Pipeline{
		filters: make([]Filter, 0, len(ids)),
	}

	for _, id := range ids {
		if id == None {
			continue
		}
		f, err := New(id)
		if err != nil {
			return nil, err
		}
		p.filters = append(p.filters, f)
	}

	return p, nil
}

// Decode applies the filter pipeline to encoded data.
// Filters are applied in reverse order (last filter first).
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	if len(p.filters) == 0 {
		return input, nil
	}

	data := input

	for i := len(p.filters) - 1; i >= 0; i-- {
		var err error
		data, err = p.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %s decode: %w", p.filters[i].ID(), err)
		}
	}

	return data, nil
}

// Empty returns true if the pipeline has no filters.
func (p *Pipeline) Empty() bool {
	return len(p.filters) == 0
}

// Len returns the number of filters in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.filters)
}

// Sniff decodes data by repeatedly detecting and removing compression
// layers until the content is no longer recognised as compressed.
// It returns the decoded bytes and the filters that were applied, outermost
// first.
func Sniff(data []byte) ([]byte, []ID, error) {
	var applied []ID
	for range maxLayers {
		id := Detect(data)
		if id == None {
			return data, applied, nil
		}
		f, err := New(id)
		if err != nil {
			return nil, applied, err
		}
		data, err = f.Decode(data)
		if err != nil {
			return nil, applied, fmt.Errorf("filter %s decode: %w", id, err)
		}
		applied = append(applied, id)
	}
	if Detect(data) != None {
		return nil, applied, fmt.Errorf("more than %d compression layers", maxLayers)
	}
	return data, applied, nil
}
