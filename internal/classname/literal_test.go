package classname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassRange(t *testing.T) {
	tests := []struct {
		value string
		want  string
		ok    bool
	}{
		{`"p-2 m-4"`, "p-2 m-4", true},
		{`'p-2'`, "p-2", true},
		{`{"p-2"}`, "p-2", true},
		{`{ 'p-2' }`, "p-2", true},
		{"{`p-2`}", "p-2", true},
		{"{`p-${n}`}", "", false},
		{`{styles.box}`, "", false},
		{`""`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			start, end, ok := ClassRange(tt.value)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, tt.value[start:end])
			}
		})
	}
}

func TestLiteralString(t *testing.T) {
	lit, ok := parseLiteral(`{'a'}`)
	assert.True(t, ok)
	lit.class = "font-['Open_Sans']"
	assert.Equal(t, "{`font-['Open_Sans']`}", lit.String())

	lit.class = "a`b'c"
	assert.Equal(t, `{"a`+"`"+`b'c"}`, lit.String())
}
