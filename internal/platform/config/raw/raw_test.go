package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixStacks(t *testing.T) {
	t.Setenv("LOG_LEVEL", " debug ")
	c := New().Prefix("LOG_")
	assert.Equal(t, "debug", c.Get("LEVEL", "info"))
	assert.Equal(t, "console", c.Get("FORMAT", "console"))

	t.Setenv("A_B_C", "x")
	assert.Equal(t, "x", New().Prefix("A_").Prefix("B_").Get("C", ""))
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("RAWTEST_")
	cases := map[string]bool{"true": true, "1": true, "yes": true, "ON": true, "false": false, "0": false, "no": false}
	for in, want := range cases {
		t.Setenv("RAWTEST_CALLER", in)
		assert.Equal(t, want, c.GetBool("CALLER", !want), in)
	}
	t.Setenv("RAWTEST_CALLER", "maybe")
	assert.True(t, c.GetBool("CALLER", true))
	t.Setenv("RAWTEST_CALLER", "")
	assert.False(t, c.GetBool("CALLER", false))
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("RAWTEST_")
	t.Setenv("RAWTEST_N", "42")
	assert.Equal(t, 42, c.GetInt("N", 1))
	for _, bad := range []string{"", "x", "-3", "4.5"} {
		t.Setenv("RAWTEST_N", bad)
		assert.Equal(t, 7, c.GetInt("N", 7), bad)
	}
}
