package xgo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShortDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0"},
		{4250 * time.Millisecond, "4.25s"},
		{8500 * time.Millisecond, "8.50s"},
		{30 * time.Millisecond, "30.0ms"},
		{90 * time.Minute, "1.50h"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ShortDuration(c.in), c.in.String())
	}
}

func TestPct(t *testing.T) {
	assert.Equal(t, 20.0, Pct(1, 5))
	assert.Zero(t, Pct(3, 0))
}

func TestRecoverFromError(t *testing.T) {
	var got any
	func() {
		defer RecoverFromError(func(e any) { got = e })
		panic("boom")
	}()
	assert.Equal(t, "boom", got)
}

func TestToJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ToJSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}", ToJSONPretty(map[string]int{"a": 1}))
}
