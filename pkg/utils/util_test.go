package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanicTrace(t *testing.T) {
	var trace string
	func() {
		defer func() {
			trace = PanicTrace(recover())
		}()
		panic("boom")
	}()

	assert.True(t, strings.HasPrefix(trace, "boom\n"))
	assert.Contains(t, trace, "util_test.go")
}
