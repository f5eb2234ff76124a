package jsonstat

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/robert-malhotra/go-jsonstat/internal/envelope"
)

// Dimension is one axis of a dataset.
type Dimension struct {
	ID    string
	Label string
	Role  string // "" when the dimension has no role
	Index int    // position in the dimension list

	categories []envelope.Category // ordered by category index
}

// Size returns the number of categories.
func (dim Dimension) Size() int {
	return len(dim.categories)
}

// CategoryIDs returns the category ids in coordinate order.
func (dim Dimension) CategoryIDs() []string {
	ids := make([]string, len(dim.categories))
	for i, c := range dim.categories {
		ids[i] = c.ID
	}
	return ids
}

// CategoryLabels returns the category labels in coordinate order.
func (dim Dimension) CategoryLabels() []string {
	labels := make([]string, len(dim.categories))
	for i, c := range dim.categories {
		labels[i] = c.Label
	}
	return labels
}

// Category returns the id and label of the category at position pos.
func (dim Dimension) Category(pos int) (id, label string, ok bool) {
	if pos < 0 || pos >= len(dim.categories) {
		return "", "", false
	}
	c := dim.categories[pos]
	return c.ID, c.Label, true
}

// DimRef refers to a dimension either by id or by position.
type DimRef struct {
	id    string
	index int
	byID  bool
}

// ByID refers to the dimension with the given id.
func ByID(id string) DimRef {
	return DimRef{id: id, byID: true}
}

// ByIndex refers to the dimension at the given position.
func ByIndex(index int) DimRef {
	return DimRef{index: index}
}

func (r DimRef) String() string {
	if r.byID {
		return strconv.Quote(r.id)
	}
	return strconv.Itoa(r.index)
}

func (d *Dataset) resolve(ref DimRef) (int, error) {
	if ref.byID {
		return d.DimensionIndex(ref.id)
	}
	if ref.index < 0 || ref.index >= len(d.dims) {
		return 0, fmt.Errorf("%w: index %d, dataset has %d dimensions",
			ErrUnknownDimension, ref.index, len(d.dims))
	}
	return ref.index, nil
}

// NumDimensions returns the number of dimensions.
func (d *Dataset) NumDimensions() int {
	return len(d.dims)
}

// Sizes returns the size of each dimension in dimension-list order.
func (d *Dataset) Sizes() []int {
	return d.codec.Sizes()
}

// IDs returns the dimension ids in dimension-list order.
func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.dims))
	for i, dim := range d.dims {
		ids[i] = dim.ID
	}
	return ids
}

// Labels returns the dimension labels in dimension-list order.
func (d *Dataset) Labels() []string {
	labels := make([]string, len(d.dims))
	for i, dim := range d.dims {
		labels[i] = dim.Label
	}
	return labels
}

// Dimensions returns a copy of the dimension list.
func (d *Dataset) Dimensions() []Dimension {
	return slices.Clone(d.dims)
}

// Dimension returns the referenced dimension.
func (d *Dataset) Dimension(ref DimRef) (*Dimension, error) {
	i, err := d.resolve(ref)
	if err != nil {
		return nil, err
	}
	dim := d.dims[i]
	return &dim, nil
}

// DimensionIndex returns the position of the dimension with the given id.
func (d *Dataset) DimensionIndex(id string) (int, error) {
	for i, dim := range d.dims {
		if dim.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, id)
}

// DimensionID returns the id of the dimension at position index.
func (d *Dataset) DimensionID(index int) (string, error) {
	i, err := d.resolve(ByIndex(index))
	if err != nil {
		return "", err
	}
	return d.dims[i].ID, nil
}

// DimensionLabel returns the label of the referenced dimension.
func (d *Dataset) DimensionLabel(ref DimRef) (string, error) {
	i, err := d.resolve(ref)
	if err != nil {
		return "", err
	}
	return d.dims[i].Label, nil
}

// CategoryLabels returns the category labels of the referenced dimension,
// ordered by category index.
func (d *Dataset) CategoryLabels(ref DimRef) ([]string, error) {
	i, err := d.resolve(ref)
	if err != nil {
		return nil, err
	}
	return d.dims[i].CategoryLabels(), nil
}

// CategoryIDs returns the category ids of the referenced dimension,
// ordered by category index.
func (d *Dataset) CategoryIDs(ref DimRef) ([]string, error) {
	i, err := d.resolve(ref)
	if err != nil {
		return nil, err
	}
	return d.dims[i].CategoryIDs(), nil
}

// CategoryIndex returns the position of a category within the referenced
// dimension. category is matched against ids first, then labels.
func (d *Dataset) CategoryIndex(ref DimRef, category string) (int, error) {
	i, err := d.resolve(ref)
	if err != nil {
		return 0, err
	}
	cats := d.dims[i].categories
	for pos, c := range cats {
		if c.ID == category {
			return pos, nil
		}
	}
	for pos, c := range cats {
		if c.Label == category {
			return pos, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in dimension %q", ErrUnknownCategory, category, d.dims[i].ID)
}

// Roles returns a copy of the role mapping: role name to dimension ids.
func (d *Dataset) Roles() map[string][]string {
	roles := make(map[string][]string, len(d.roles))
	for role, ids := range d.roles {
		roles[role] = slices.Clone(ids)
	}
	return roles
}

// RoleOf returns the role of the referenced dimension. ok is false when the
// dimension has no role.
func (d *Dataset) RoleOf(ref DimRef) (role string, ok bool, err error) {
	i, err := d.resolve(ref)
	if err != nil {
		return "", false, err
	}
	role = d.dims[i].Role
	return role, role != "", nil
}
