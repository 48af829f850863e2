package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "hierarchical categories share a prefix",
			raw:  []string{"Fiction / Classics", "Fiction / Fantasy"},
			want: []string{"Fiction", "Classics", "Fantasy"},
		},
		{
			name: "empty segments are dropped",
			raw:  []string{" / Science//Fiction / "},
			want: []string{"Science", "Fiction"},
		},
		{
			name: "matching is exact",
			raw:  []string{"fiction", "Fiction"},
			want: []string{"fiction", "Fiction"},
		},
		{
			name: "composed and decomposed forms are one genre",
			raw:  []string{"Po\u00e9sie", "Poe\u0301sie"},
			want: []string{"Po\u00e9sie"},
		},
		{
			name: "nil input",
			raw:  nil,
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize([]string{"Juvenile Fiction / Animals / Horses", "Fiction / Animals"})
	assert.Equal(t, once, Normalize(once))
	assert.Equal(t, []string{"Juvenile Fiction", "Animals", "Horses", "Fiction"}, once)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "Fiction, Classics", Join([]string{"Fiction", "Classics"}))
	assert.Equal(t, "", Join(nil))
}

func TestNormalizeKeepsCommas(t *testing.T) {
	assert.Equal(t, []string{"Body, Mind & Spirit"}, Normalize([]string{"Body, Mind & Spirit"}))
}

func TestOrUnknown(t *testing.T) {
	assert.Equal(t, []string{Unknown}, OrUnknown(nil))
	assert.Equal(t, []string{"Fiction"}, OrUnknown([]string{"Fiction"}))
}
