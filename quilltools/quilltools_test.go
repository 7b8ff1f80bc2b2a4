package quilltools_test

import (
	"strings"
	"testing"

	"github.com/lunagic/quill/quilltools"
	"gotest.tools/v3/assert"
)

func TestMap(t *testing.T) {
	assert.DeepEqual(
		t,
		[]string{"id=?", "name=?"},
		quilltools.Map(
			[]string{"id", "name"},
			func(column string) string {
				return column + "=?"
			},
		),
	)

	assert.DeepEqual(t, []int{}, quilltools.Map([]string{}, func(s string) int { return len(s) }))
}

func TestFilter(t *testing.T) {
	assert.DeepEqual(
		t,
		[]string{"id", "name"},
		quilltools.Filter(
			[]string{"id", " ", "", "name"},
			func(column string) bool {
				return strings.TrimSpace(column) != ""
			},
		),
	)
}

func TestSortedKeys(t *testing.T) {
	assert.DeepEqual(
		t,
		[]string{"age", "id", "name"},
		quilltools.SortedKeys(map[string]any{
			"name": "test",
			"id":   1,
			"age":  33,
		}),
	)
}
