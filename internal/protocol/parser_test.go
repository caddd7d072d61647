package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmptyLineIsNoOp(t *testing.T) {
	req := Parse([]byte(""))
	assert.Equal(t, NoOp, req.Kind)
}

func TestParsePing(t *testing.T) {
	req := Parse([]byte("PING"))
	assert.Equal(t, Ping, req.Kind)
}

func TestParseGet(t *testing.T) {
	req := Parse([]byte("GET mykey"))
	assert.Equal(t, Get, req.Kind)
	assert.Equal(t, "mykey", req.Key)
}

func TestParseSet(t *testing.T) {
	req := Parse([]byte(`SET mykey "hello world"`))
	assert.Equal(t, Set, req.Kind)
	assert.Equal(t, "mykey", req.Key)
	assert.Equal(t, "hello world", req.Val)
}

func TestParseIncrBy(t *testing.T) {
	req := Parse([]byte("INCRBY counter 5"))
	assert.Equal(t, IncrBy, req.Kind)
	assert.Equal(t, "counter", req.Key)
	assert.EqualValues(t, 5, req.Delta)
}

func TestParseDecrByNegativeDelta(t *testing.T) {
	req := Parse([]byte("DECRBY counter -5"))
	assert.Equal(t, DecrBy, req.Kind)
	assert.EqualValues(t, -5, req.Delta)
}

func TestParseIncrByNonIntegerDelta(t *testing.T) {
	req := Parse([]byte("INCRBY counter abc"))
	assert.Equal(t, Invalid, req.Kind)
	assert.Contains(t, req.Err, "non-integer")
}

func TestParseHSet(t *testing.T) {
	req := Parse([]byte("HSET user:1 name ada"))
	assert.Equal(t, HSet, req.Kind)
	assert.Equal(t, "user:1", req.Key)
	assert.Equal(t, "name", req.Field)
	assert.Equal(t, "ada", req.Val)
}

func TestParseUnrecognizedOperator(t *testing.T) {
	req := Parse([]byte("FROBNICATE a b c"))
	assert.Equal(t, Invalid, req.Kind)
	assert.Contains(t, req.Err, "Unrecognized operator")
}

func TestParseWrongArity(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"set with no args", "SET"},
		{"set with one arg", "SET onlykey"},
		{"set with three args", "SET k v extra"},
		{"get with no args", "GET"},
		{"ping with extra arg", "PING extra"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := Parse([]byte(c.line))
			assert.Equal(t, Invalid, req.Kind)
			assert.Contains(t, req.Err, "Unexpected number of arguments")
		})
	}
}

func TestParseNonUTF8IsFatal(t *testing.T) {
	req := Parse([]byte{0xff, 0xfe, 0xfd})
	assert.Equal(t, Invalid, req.Kind)
	assert.True(t, req.Fatal)
	assert.Contains(t, req.Err, "not valid UTF-8")
}

func TestParseOperatorCaseInsensitive(t *testing.T) {
	req := Parse([]byte("get mykey"))
	assert.Equal(t, Get, req.Kind)
}

func TestParseQuit(t *testing.T) {
	req := Parse([]byte("QUIT"))
	assert.Equal(t, Quit, req.Kind)
}
