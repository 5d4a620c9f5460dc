package concurrent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoroutineID(t *testing.T) {
	id := GoroutineID()
	assert.NotZero(t, id)
	assert.Equal(t, id, GoroutineID())

	other := make(chan int64)
	go func() {
		other <- GoroutineID()
	}()
	assert.NotEqual(t, id, <-other)
}
