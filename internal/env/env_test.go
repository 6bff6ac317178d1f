package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("LIVELENS_TEST_STR", "  http://api.test  ")
	assert.Equal(t, "http://api.test", GetString("LIVELENS_TEST_STR", "x"))

	t.Setenv("LIVELENS_TEST_STR", "   ")
	assert.Equal(t, "x", GetString("LIVELENS_TEST_STR", "x"))
	assert.Equal(t, "fallback", GetString("LIVELENS_TEST_UNSET", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("LIVELENS_TEST_INT", "75")
	assert.Equal(t, 75, GetInt("LIVELENS_TEST_INT", 50))

	t.Setenv("LIVELENS_TEST_INT", "fifty")
	assert.Equal(t, 50, GetInt("LIVELENS_TEST_INT", 50))
}

func TestGetBool(t *testing.T) {
	t.Setenv("LIVELENS_TEST_BOOL", "true")
	assert.True(t, GetBool("LIVELENS_TEST_BOOL", false))

	t.Setenv("LIVELENS_TEST_BOOL", "sometimes")
	assert.False(t, GetBool("LIVELENS_TEST_BOOL", false))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("LIVELENS_TEST_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, GetDuration("LIVELENS_TEST_DUR", time.Second))

	t.Setenv("LIVELENS_TEST_DUR", "-1s")
	assert.Equal(t, time.Second, GetDuration("LIVELENS_TEST_DUR", time.Second))

	t.Setenv("LIVELENS_TEST_DUR", "soon")
	assert.Equal(t, time.Second, GetDuration("LIVELENS_TEST_DUR", time.Second))
}
