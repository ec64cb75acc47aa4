package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFallbackRules(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []FallbackRule
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{
			name: "pairs",
			raw:  "Research=Research Lab, sales = Head Office ,",
			want: []FallbackRule{{Keyword: "research", Site: "Research Lab"}, {Keyword: "sales", Site: "Head Office"}},
		},
		{name: "missing site", raw: "research=", wantErr: true},
		{name: "missing separator", raw: "research", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFallbackRules(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchFallback(t *testing.T) {
	rules := []FallbackRule{{Keyword: "research", Site: "Research Lab"}, {Keyword: "globex", Site: "Globex HQ"}}

	site, ok := matchFallback(rules, "Globex Research Inc")
	assert.True(t, ok)
	assert.Equal(t, "Research Lab", site, "first matching rule wins")

	_, ok = matchFallback(rules, "Acme")
	assert.False(t, ok)
}
