package envelope

import (
	"github.com/robert-malhotra/go-jsonstat/internal/dtype"
)

func decodeDimensions(env *Envelope, raw any, maxCells int) error {
	if raw == nil {
		return errorf("/dataset/dimension", "field is missing")
	}
	dims, ok := raw.(map[string]any)
	if !ok {
		return errorf("/dataset/dimension", "expected object, got %s", dtype.ClassOf(raw))
	}

	rawIDs, ok := dims["id"]
	if !ok {
		return errorf("/dataset/dimension/id", "field is missing")
	}
	ids, err := dtype.Strings(rawIDs)
	if err != nil {
		return wrapf("/dataset/dimension/id", err, "invalid dimension ids")
	}
	if len(ids) == 0 {
		return errorf("/dataset/dimension/id", "no dimensions declared")
	}

	rawSizes, ok := dims["size"]
	if !ok {
		return errorf("/dataset/dimension/size", "field is missing")
	}
	sizes, err := dtype.Ints(rawSizes)
	if err != nil {
		return wrapf("/dataset/dimension/size", err, "invalid dimension sizes")
	}
	if len(sizes) != len(ids) {
		return errorf("/dataset/dimension/size", "%d sizes for %d dimension ids", len(sizes), len(ids))
	}

	total := 1
	for i, s := range sizes {
		if s < 1 {
			return errorf(pointer("dataset", "dimension", "size"), "dimension %q has size %d, must be >= 1", ids[i], s)
		}
		if total > maxCells/s {
			return errorf("/dataset/dimension/size", "dataset declares more than %d cells", maxCells)
		}
		total *= s
	}

	seen := make(map[string]bool, len(ids))
	env.Dimensions = make([]Dimension, len(ids))
	for i, id := range ids {
		if seen[id] {
			return errorf("/dataset/dimension/id", "duplicate dimension id %q", id)
		}
		seen[id] = true

		d, err := decodeDimension(id, sizes[i], dims[id])
		if err != nil {
			return err
		}
		env.Dimensions[i] = d
	}

	roles, err := decodeRoles(dims["role"], env.Dimensions)
	if err != nil {
		return err
	}
	env.Roles = roles

	return nil
}

func decodeDimension(id string, size int, raw any) (Dimension, error) {
	path := pointer("dataset", "dimension", id)
	if raw == nil {
		return Dimension{}, errorf(path, "dimension object is missing")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Dimension{}, errorf(path, "expected object, got %s", dtype.ClassOf(raw))
	}

	d := Dimension{ID: id, Label: id, Size: size}
	if v, ok := obj["label"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return Dimension{}, errorf(path+"/label", "expected string, got %s", dtype.ClassOf(v))
		}
		d.Label = s
	}

	cats, err := decodeCategories(path+"/category", size, obj["category"])
	if err != nil {
		return Dimension{}, err
	}
	d.Categories = cats
	return d, nil
}

// decodeCategories returns the categories of a dimension ordered by their
// index. The index may be an object (id -> position) or an array of ids; it
// may be omitted only for single-category dimensions.
func decodeCategories(path string, size int, raw any) ([]Category, error) {
	if raw == nil {
		return nil, errorf(path, "field is missing")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errorf(path, "expected object, got %s", dtype.ClassOf(raw))
	}

	var labels map[string]any
	if v, ok := obj["label"]; ok && v != nil {
		labels, ok = v.(map[string]any)
		if !ok {
			return nil, errorf(path+"/label", "expected object, got %s", dtype.ClassOf(v))
		}
	}

	ids, err := orderedCategoryIDs(path, size, obj["index"], labels)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(ids))
	cats := make([]Category, len(ids))
	for pos, id := range ids {
		known[id] = true
		cats[pos] = Category{ID: id, Label: id}
		if v, ok := labels[id]; ok {
			s, err := dtype.String(v)
			if err != nil {
				return nil, wrapf(path+pointer("label", id), err, "invalid category label")
			}
			cats[pos].Label = s
		}
	}

	for _, k := range sortedKeys(labels) {
		if !known[k] {
			return nil, errorf(path+pointer("label", k), "label for category not present in index")
		}
	}

	return cats, nil
}

func orderedCategoryIDs(path string, size int, rawIndex any, labels map[string]any) ([]string, error) {
	switch index := rawIndex.(type) {
	case nil:
		if size != 1 || len(labels) != 1 {
			return nil, errorf(path+"/index", "field is missing")
		}
		return sortedKeys(labels), nil

	case []any:
		ids, err := dtype.Strings(index)
		if err != nil {
			return nil, wrapf(path+"/index", err, "invalid category ids")
		}
		if len(ids) != size {
			return nil, errorf(path+"/index", "%d categories, dimension size is %d", len(ids), size)
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				return nil, errorf(path+"/index", "duplicate category id %q", id)
			}
			seen[id] = true
		}
		return ids, nil

	case map[string]any:
		if len(index) != size {
			return nil, errorf(path+"/index", "%d categories, dimension size is %d", len(index), size)
		}
		// Labels are placed by the category's index, not by map order.
		ids := make([]string, size)
		filled := make([]bool, size)
		for _, id := range sortedKeys(index) {
			pos, err := dtype.Int(index[id])
			if err != nil {
				return nil, wrapf(path+pointer("index", id), err, "invalid category position")
			}
			if pos < 0 || pos >= size {
				return nil, errorf(path+pointer("index", id), "position %d not in [0, %d)", pos, size)
			}
			if filled[pos] {
				return nil, errorf(path+pointer("index", id), "position %d assigned to %q and %q", pos, ids[pos], id)
			}
			ids[pos] = id
			filled[pos] = true
		}
		return ids, nil

	default:
		return nil, errorf(path+"/index", "expected object or array, got %s", dtype.ClassOf(rawIndex))
	}
}

// decodeRoles validates the role object and records each dimension's role.
// A dimension may carry at most one role.
func decodeRoles(raw any, dims []Dimension) (map[string][]string, error) {
	roles := make(map[string][]string)
	if raw == nil {
		return roles, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errorf("/dataset/dimension/role", "expected object, got %s", dtype.ClassOf(raw))
	}

	byID := make(map[string]int, len(dims))
	for i, d := range dims {
		byID[d.ID] = i
	}

	for _, role := range sortedKeys(obj) {
		path := pointer("dataset", "dimension", "role", role)
		ids, err := dtype.Strings(obj[role])
		if err != nil {
			return nil, wrapf(path, err, "invalid role members")
		}
		for _, id := range ids {
			i, ok := byID[id]
			if !ok {
				return nil, errorf(path, "unknown dimension %q", id)
			}
			if dims[i].Role != "" && dims[i].Role != role {
				return nil, errorf(path, "dimension %q already has role %q", id, dims[i].Role)
			}
			dims[i].Role = role
		}
		roles[role] = ids
	}
	return roles, nil
}
