package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		want        []Capability
		wantUnknown []string
	}{
		{name: "single", value: "links", want: []Capability{Links}},
		{name: "all", value: "all", want: All},
		{name: "list with spaces", value: "users, analytics", want: []Capability{Users, Analytics}},
		{name: "mixed case", value: "Notifications", want: []Capability{Notifications}},
		{name: "unknown", value: "generico", want: nil, wantUnknown: []string{"generico"}},
		{name: "empty", value: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, unknown := Parse(tt.value)
			assert.Len(t, set, len(tt.want))
			for _, c := range tt.want {
				assert.True(t, set.Has(c), "expected %s to be served", c)
			}
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestSetString(t *testing.T) {
	set, _ := Parse("users,links")
	assert.Equal(t, "links,users", set.String())
	assert.Equal(t, "none", Set{}.String())
}
