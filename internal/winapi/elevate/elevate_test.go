package elevate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinArgs(t *testing.T) {
	assert.Equal(t, `list --show-passwords`, joinArgs([]string{"list", "--show-passwords"}))
	assert.Equal(t, `show "My Net" ""`, joinArgs([]string{"show", "My Net", ""}))
	assert.Equal(t, `delete "say \"hi\""`, joinArgs([]string{"delete", `say "hi"`}))
	assert.Equal(t, "", joinArgs(nil))
}
