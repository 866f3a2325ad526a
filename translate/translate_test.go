package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(Printer())
	assert.Same(Printer(), Printer())
	assert.Equal("device code 77 invalid", From("device code %o invalid", 077))
	assert.Equal("halted", From("halted"))
}
