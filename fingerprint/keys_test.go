package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactKeys(t *testing.T) {
	cmp := ExactKeys[string]()
	assert.True(t, cmp("gcc -O2", "gcc -O2"))
	assert.False(t, cmp("gcc -O2", "gcc -O3"))
}

func TestDeepEqualKeys(t *testing.T) {
	cmp := DeepEqualKeys[[]string]()
	assert.True(t, cmp([]string{"-O2", "-g"}, []string{"-O2", "-g"}))
	assert.False(t, cmp([]string{"-O2", "-g"}, []string{"-g", "-O2"}))
	assert.False(t, cmp([]string{"-O2"}, nil))
}

func TestSubsetKeys(t *testing.T) {
	cmp := SubsetKeys[string]()

	// Order does not matter; only membership does.
	assert.True(t, cmp([]string{"-g", "-O2"}, []string{"-O2", "-g", "-Wall"}))
	assert.True(t, cmp(nil, []string{"-O2"}))
	assert.True(t, cmp(nil, nil))
	assert.False(t, cmp([]string{"-O3"}, []string{"-O2", "-g"}))
	assert.False(t, cmp([]string{"-O2"}, nil))
}
