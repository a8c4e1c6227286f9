package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tone mark stripped", "xué", "xue"},
		{"tone number stripped", "xue2", "xue"},
		{"case and outer whitespace", " Xue2 ", "xue"},
		{"already plain", "xue", "xue"},
		{"internal whitespace removed", "ni hao", "nihao"},
		{"multi syllable tone marks", "nǐ hǎo", "nihao"},
		{"umlaut u preserved", "nǚ", "nü"},
		{"plain umlaut unchanged", "nü", "nü"},
		{"fifth tone number", "ma5", "ma"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestEquivalent(t *testing.T) {
	assert.True(t, Equivalent("xué", "xue2"))
	assert.True(t, Equivalent(" Xue2 ", "xue"))
	assert.True(t, Equivalent("nǚ", "nü3"))

	// ǚ collapses to ü, not to u, and the v-for-ü convention is not supported.
	assert.False(t, Equivalent("nǚ", "nu"))
	assert.False(t, Equivalent("nǚ", "nv3"))
}
