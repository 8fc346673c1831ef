package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/internal/table"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    table.Filter
		wantErr error
	}{
		{"empty is inactive", "", table.Filter{}, nil},
		{"whitespace is inactive", "   ", table.Filter{}, nil},
		{"basic", "name=jo", table.Filter{Field: "name", Value: "jo"}, nil},
		{"value keeps equals signs", "expr=a=b", table.Filter{Field: "expr", Value: "a=b"}, nil},
		{"empty value allowed", "name=", table.Filter{Field: "name", Value: ""}, nil},
		{"field trimmed", " name =jo", table.Filter{Field: "name", Value: "jo"}, nil},
		{"missing equals", "name", table.Filter{}, ErrInvalidFilterFormat},
		{"empty field", "=jo", table.Filter{}, ErrEmptyFilterField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
