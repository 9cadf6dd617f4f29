package datatable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestNormalize(t *testing.T) {
	t.Run("defaults applied to zero values", func(t *testing.T) {
		r := Request{}
		r.Normalize()

		assert.Equal(t, int64(0), r.Start)
		assert.Equal(t, int64(25), r.Length)
	})

	t.Run("negative start clamped", func(t *testing.T) {
		r := Request{Start: -10, Length: 50}
		r.Normalize()

		assert.Equal(t, int64(0), r.Start)
		assert.Equal(t, int64(50), r.Length)
	})

	t.Run("oversized length capped", func(t *testing.T) {
		r := Request{Length: 5000}
		r.Normalize()

		assert.Equal(t, int64(100), r.Length)
	})

	t.Run("negative length falls back to default", func(t *testing.T) {
		r := Request{Length: -1}
		r.Normalize()

		assert.Equal(t, int64(25), r.Length)
	})
}

func TestRequestJSONShape(t *testing.T) {
	var r Request
	require.NoError(t, json.Unmarshal([]byte(`{
		"start": 50,
		"length": 25,
		"search": "phone",
		"order": [{"column": "name", "dir": "desc"}]
	}`), &r))

	assert.Equal(t, int64(50), r.Start)
	assert.Equal(t, "phone", r.Search)
	require.Len(t, r.Order, 1)
	assert.Equal(t, "name", r.Order[0].Column)
	assert.Equal(t, SortDesc, r.Order[0].Dir)
}

func TestResponseJSONShape(t *testing.T) {
	out, err := json.Marshal(Response{
		Data:            []string{"a"},
		RecordsTotal:    12,
		RecordsFiltered: 3,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":["a"],"recordsTotal":12,"recordsFiltered":3}`, string(out))
}
