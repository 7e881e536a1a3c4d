package placetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLonely(t *testing.T) {
	pt := build(t, "(((A)B,C)D,((E)F)G)R;")
	lonely := Lonely(pt)

	labels := make([]string, len(lonely))
	for i, index := range lonely {
		n, _ := pt.Node(index)
		labels[i] = n.Label
	}
	assert.Equal(t, []string{"A", "F", "E"}, labels)
}

func TestLonelyNone(t *testing.T) {
	assert.Empty(t, Lonely(build(t, example)))
	assert.Empty(t, Lonely(build(t, "A;")))
}
