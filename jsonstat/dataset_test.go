package jsonstat

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cube is a small three-dimensional dataset: geo (2) x year (3) x sex (2).
// Offset 5 is null with status "c", offset 6 is null without status.
const cube = `{"dataset":{
	"label":"Population","source":"Test office","updated":"2023-05-01",
	"dimension":{
		"id":["geo","year","sex"],
		"size":[2,3,2],
		"geo":{"label":"country","category":{"index":{"SE":1,"NO":0},"label":{"NO":"Norway","SE":"Sweden"}}},
		"year":{"category":{"index":["2020","2021","2022"]}},
		"sex":{"label":"sex","category":{"index":{"M":0,"F":1},"label":{"M":"Male","F":"Female"}}},
		"role":{"geo":["geo"],"time":["year"]}
	},
	"value":[0,1,2,3,4,null,null,7,8,9,10,1234567.891],
	"status":{"5":"c","7":"p"}
}}`

func loadDoc(t *testing.T, doc string, opts ...Option) *Dataset {
	t.Helper()
	ds, err := Parse([]byte(doc), opts...)
	require.NoError(t, err)
	return ds
}

func load1052(t *testing.T, opts ...Option) *Dataset {
	t.Helper()
	data, err := os.ReadFile("testdata/1052.json")
	require.NoError(t, err)
	ds, err := Parse(data, opts...)
	require.NoError(t, err)
	return ds
}

func TestWorkedExample(t *testing.T) {
	ds := load1052(t)

	assert.Equal(t, "Employment and unemployment for persons aged 15-74, by sex, age, time and contents", ds.Label())
	assert.Equal(t, "Statistics Norway", ds.Source())
	assert.True(t, ds.Updated().Equal(time.Date(2016, 3, 14, 10, 19, 18, 0, time.UTC)))

	assert.Equal(t, []int{1, 1, 13, 2}, ds.Sizes())
	assert.Equal(t, []int{26, 26, 2, 1}, ds.Strides())
	assert.Equal(t, 26, ds.NumCells())

	tests := []struct {
		coord  []int
		offset int
		value  Value
	}{
		{[]int{0, 0, 0, 0}, 0, NumberValue(110)},
		{[]int{0, 0, 9, 1}, 19, NumberValue(4.6)},
		{[]int{0, 0, 12, 0}, 24, StatusValue("..")},
		{[]int{0, 0, 12, 1}, 25, StatusValue("..")},
	}
	for _, tt := range tests {
		off, err := ds.Offset(tt.coord)
		require.NoError(t, err)
		assert.Equal(t, tt.offset, off, "offset of %v", tt.coord)

		v, err := ds.Value(tt.coord)
		require.NoError(t, err)
		assert.Equal(t, tt.value, v, "value at %v", tt.coord)
	}

	cell, err := ds.CellAt([]int{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Both sexes",
		"15-74 years",
		"2015M01",
		"Unemployment (LFS) (1 000 persons), seasonally adjusted",
	}, cell.Labels)
	f, ok := cell.Value.Float64()
	assert.True(t, ok)
	assert.Equal(t, 110.0, f)

	code, ok, err := ds.Status([]int{0, 0, 12, 1})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "..", code)

	_, ok, err = ds.Status([]int{0, 0, 0, 0})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyStatusIsAStatus(t *testing.T) {
	doc := `{"dataset":{"dimension":{"id":["r","c"],"size":[1,2],
		"r":{"category":{"index":["x"]}},"c":{"category":{"index":["a","b"]}}},
		"value":[null,null],"status":{"0":""}}}`
	ds := loadDoc(t, doc, WithMissing("-"))

	v, err := ds.Value([]int{0, 0})
	require.NoError(t, err)
	assert.Equal(t, KindStatus, v.Kind())
	code, ok := v.StatusCode()
	assert.True(t, ok)
	assert.Equal(t, "", code)

	v, err = ds.Value([]int{0, 1})
	require.NoError(t, err)
	assert.True(t, v.IsMissing())

	grid, err := ds.Table(0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "", "-"}, grid[1])
}

func TestCellValues(t *testing.T) {
	ds := loadDoc(t, cube)

	v, err := ds.Value([]int{0, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, KindStatus, v.Kind())
	assert.Equal(t, "c", v.String())

	v, err = ds.Value([]int{1, 0, 0})
	require.NoError(t, err)
	assert.True(t, v.IsMissing())
	assert.Equal(t, "", v.String())

	// A number wins over a status recorded for the same offset.
	v, err = ds.Value([]int{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, NumberValue(7), v)
	code, ok, err := ds.Status([]int{1, 0, 1})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "p", code)

	cell, err := ds.CellAt([]int{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sweden", "2022", "Female"}, cell.Labels)
	assert.Equal(t, "1234567.891", cell.Value.String())
}

func TestCellCountAndRoundTrip(t *testing.T) {
	for name, ds := range map[string]*Dataset{"1052": load1052(t), "cube": loadDoc(t, cube)} {
		t.Run(name, func(t *testing.T) {
			total := 1
			for _, s := range ds.Sizes() {
				total *= s
			}
			assert.Equal(t, total, ds.NumCells())

			seen := make(map[int]bool, total)
			count := 0
			for coord := range ds.Cells() {
				off, err := ds.Offset(coord)
				require.NoError(t, err)
				assert.False(t, seen[off], "offset %d produced twice", off)
				seen[off] = true
				assert.True(t, off >= 0 && off < total)

				back, err := ds.Coordinate(off)
				require.NoError(t, err)
				assert.Equal(t, coord, back)
				count++
			}
			assert.Equal(t, total, count)
			assert.Len(t, seen, total)
		})
	}
}

func TestCoordinateOutOfRange(t *testing.T) {
	ds := load1052(t)

	bad := [][]int{
		nil,
		{0, 0, 0},
		{0, 0, 0, 0, 0},
		{-1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 13, 0},
		{0, 0, 0, 2},
	}
	for _, coord := range bad {
		_, err := ds.CellAt(coord)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange, "CellAt(%v)", coord)
		_, err = ds.Value(coord)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange, "Value(%v)", coord)
		_, _, err = ds.Status(coord)
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange, "Status(%v)", coord)
	}

	_, err := ds.Coordinate(26)
	assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ds := loadDoc(t, cube)

	cell, err := ds.CellAt([]int{0, 0, 0})
	require.NoError(t, err)
	cell.Labels[0] = "changed"

	labels, err := ds.CategoryLabels(ByIndex(0))
	require.NoError(t, err)
	labels[0] = "changed"

	sizes := ds.Sizes()
	sizes[0] = 99

	roles := ds.Roles()
	roles["time"][0] = "changed"
	delete(roles, "geo")

	dims := ds.Dimensions()
	dims[0].ID = "changed"

	dim, err := ds.Dimension(ByID("geo"))
	require.NoError(t, err)
	dim.Label = "changed"

	again, err := ds.CellAt([]int{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"Norway", "2020", "Male"}, again.Labels)
	assert.Equal(t, []int{2, 3, 2}, ds.Sizes())
	assert.Equal(t, map[string][]string{"geo": {"geo"}, "time": {"year"}}, ds.Roles())
	assert.Equal(t, []string{"geo", "year", "sex"}, ds.IDs())
	label, err := ds.DimensionLabel(ByID("geo"))
	require.NoError(t, err)
	assert.Equal(t, "country", label)
}

func TestIdempotentReads(t *testing.T) {
	ds := load1052(t)

	first, err := ds.Table(2, 3, nil)
	require.NoError(t, err)
	cell1, err := ds.CellAt([]int{0, 0, 5, 1})
	require.NoError(t, err)

	for range 3 {
		again, err := ds.Table(2, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)

		cell2, err := ds.CellAt([]int{0, 0, 5, 1})
		require.NoError(t, err)
		assert.Equal(t, cell1, cell2)
	}
}

func TestConcurrentReaders(t *testing.T) {
	ds := load1052(t)
	want, err := ds.Table(2, 3, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ds.Table(2, 3, nil)
			if err != nil {
				errs <- err
				return
			}
			if len(got) != len(want) || got[10][2] != want[10][2] {
				errs <- errors.New("table mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestFingerprint(t *testing.T) {
	a := load1052(t)
	b := load1052(t)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotZero(t, a.Fingerprint())

	// Same content, different member order and category index form.
	reordered := `{"dataset":{"value":[0,1,2,3,4,null,null,7,8,9,10,1234567.891],
		"status":{"7":"p","5":"c"},
		"dimension":{
			"sex":{"category":{"index":["M","F"]}},
			"year":{"category":{"index":{"2022":2,"2020":0,"2021":1}}},
			"geo":{"category":{"index":["NO","SE"]}},
			"size":[2,3,2],"id":["geo","year","sex"]}}}`
	assert.Equal(t, loadDoc(t, cube).Fingerprint(), loadDoc(t, reordered).Fingerprint())

	changed := loadDoc(t, `{"dataset":{"dimension":{"id":["d"],"size":[2],"d":{"category":{"index":["a","b"]}}},"value":[1,2]}}`)
	other := loadDoc(t, `{"dataset":{"dimension":{"id":["d"],"size":[2],"d":{"category":{"index":["a","b"]}}},"value":[1,3]}}`)
	assert.NotEqual(t, changed.Fingerprint(), other.Fingerprint())
}

func TestNewMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string // expected JSON Pointer, "" when no DecodeError is expected
	}{
		{"no dataset", `{"version":"2.0"}`, "/dataset"},
		{"null document", `null`, ""},
		{"size mismatch", `{"dataset":{"dimension":{"id":["d"],"size":[2],"d":{"category":{"index":["a","b"]}}},"value":[1,2,3]}}`, "/dataset/value"},
		{"missing category", `{"dataset":{"dimension":{"id":["d"],"size":[2],"d":{"label":"x"}},"value":[1,2]}}`, "/dataset/dimension/d/category"},
		{"bad value", `{"dataset":{"dimension":{"id":["d"],"size":[1],"d":{"category":{"index":["a"]}}},"value":["x"]}}`, "/dataset/value/0"},
		{"not json", `{"dataset":`, ""},
		{"trailing data", `{"dataset":{}} {}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.ErrorIs(t, err, ErrMalformedDataset)

			var de *DecodeError
			if tt.path == "" {
				return
			}
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.path, de.Path)
		})
	}
}

func TestNewFromTree(t *testing.T) {
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(cube), &tree))

	ds, err := New(tree)
	require.NoError(t, err)
	assert.Equal(t, 12, ds.NumCells())

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrMalformedDataset)
}

func TestWithMaxCells(t *testing.T) {
	_, err := Parse([]byte(cube), WithMaxCells(10))
	assert.ErrorIs(t, err, ErrMalformedDataset)

	_, err = Parse([]byte(cube), WithMaxCells(12))
	assert.NoError(t, err)
}
