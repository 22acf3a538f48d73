package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestStringSlicesOverlap(t *testing.T) {
	assert.True(t, StringSlicesOverlap([]string{"a", "b"}, []string{"b", "c"}))
	assert.False(t, StringSlicesOverlap([]string{"a", "b"}, []string{"c", "d"}))
	assert.False(t, StringSlicesOverlap(nil, []string{"a"}))
}

func TestDedupStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, DedupStringSlice([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, DedupStringSlice(nil))
}

func TestRandomAlphabetString(t *testing.T) {
	str := RandomAlphabetString(8)
	assert.Equal(t, 8, len(str))
}
