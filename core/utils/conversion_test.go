package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	assert.Equal(t, 900000.0, ToFloat(900000))
	assert.Equal(t, 899999.5, ToFloat("899999.5"))
	assert.Equal(t, 1.5, ToFloat(float32(1.5)))
	assert.Equal(t, 0.0, ToFloat(nil))
	assert.Equal(t, 0.0, ToFloat("not-a-number"))
	assert.Equal(t, 42.0, ToFloat(" 42 "))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "W52P1J13G0027", ToString("W52P1J13G0027"))
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "7", ToString(7))
	assert.Equal(t, "abc", ToString([]byte("abc")))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 100, ToInt("100"))
	assert.Equal(t, 100, ToInt(100.0))
	assert.Equal(t, 0, ToInt("x"))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool(nil))
}
