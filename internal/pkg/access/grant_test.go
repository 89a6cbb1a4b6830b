package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrantAllows(t *testing.T) {
	g := &Grant{SessionId: "s1", NotebookId: 4}

	assert.True(t, g.Allows(4))
	assert.False(t, g.Allows(5))

	var none *Grant
	assert.False(t, none.Allows(4))
}
