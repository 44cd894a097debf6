package context7_test

import (
	"testing"

	"github.com/fwojciec/context7"
	"github.com/stretchr/testify/assert"
)

func TestGreet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello, World!", context7.Greet("World"))
}
