package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	s := New()

	_, ok, err := s.Get("greeting")
	require.NoError(t, err)
	assert.False(t, ok)

	prev, hadPrev, err := s.Set("greeting", "hello")
	require.NoError(t, err)
	assert.False(t, hadPrev)
	assert.Empty(t, prev)

	val, ok, err := s.Get("greeting")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", val)

	prev, hadPrev, err = s.Set("greeting", "bye")
	require.NoError(t, err)
	assert.True(t, hadPrev)
	assert.Equal(t, "hello", prev)
}

func TestIncrDecrOnExistingKey(t *testing.T) {
	s := New()
	_, _, err := s.Set("counter", "0")
	require.NoError(t, err)

	v, err := s.Incr("counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = s.IncrBy("counter", 41)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = s.DecrBy("counter", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(40), v)

	v, err = s.Decr("counter")
	require.NoError(t, err)
	assert.Equal(t, int64(39), v)
}

func TestIncrOverflow(t *testing.T) {
	s := New()
	_, _, err := s.Set("counter", "9223372036854775807") // math.MaxInt64
	require.NoError(t, err)

	_, err = s.Incr("counter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out-of-bounds")
}

func TestDecrByMinInt64IsOverflow(t *testing.T) {
	s := New()
	_, _, err := s.Set("counter", "0")
	require.NoError(t, err)

	_, err = s.DecrBy("counter", math.MinInt64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out-of-bounds")
}

func TestDecrByAbsentKeyReportsKeyNotFoundBeforeOverflowCheck(t *testing.T) {
	s := New()

	// delta itself cannot be negated without overflowing, but key
	// resolution must be checked first: the absent key's own error wins.
	_, err := s.DecrBy("absent", math.MinInt64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
	assert.NotContains(t, err.Error(), "out-of-bounds")
}

func TestIncrNonIntegerValue(t *testing.T) {
	s := New()
	_, _, err := s.Set("greeting", "hello")
	require.NoError(t, err)

	_, err = s.Incr("greeting")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "64-bit integer")
}

func TestIncrMissingKey(t *testing.T) {
	s := New()
	_, err := s.Incr("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestListPushPop(t *testing.T) {
	s := New()

	n, err := s.RPush("queue", "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.RPush("queue", "b")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.LPush("queue", "z")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	val, ok, err := s.LPop("queue")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "z", val)

	val, ok, err = s.RPop("queue")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", val)
}

func TestListPopEmptyOrAbsent(t *testing.T) {
	s := New()

	_, ok, err := s.LPop("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.RPush("q", "x")
	require.NoError(t, err)
	_, _, _ = s.LPop("q")

	_, ok, err = s.RPop("q")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetOperations(t *testing.T) {
	s := New()

	n, err := s.SAdd("tags", "red")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.SAdd("tags", "red")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "adding an existing member does not grow cardinality")

	n, err = s.SAdd("tags", "blue")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	member, err := s.SIsMember("tags", "red")
	require.NoError(t, err)
	assert.True(t, member)

	member, err = s.SIsMember("tags", "green")
	require.NoError(t, err)
	assert.False(t, member)

	// SRem returns the post-removal cardinality, not a removed-count.
	n, err = s.SRem("tags", "red")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	members, err := s.SMembers("tags")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"blue"}, members)
}

func TestSMembersAbsentKey(t *testing.T) {
	s := New()
	members, err := s.SMembers("nope")
	require.NoError(t, err)
	assert.Nil(t, members)
}

func TestHashOperations(t *testing.T) {
	s := New()

	prev, hadPrev, err := s.HSet("user:1", "name", "ada")
	require.NoError(t, err)
	assert.False(t, hadPrev)
	assert.Empty(t, prev)

	prev, hadPrev, err = s.HSet("user:1", "name", "lovelace")
	require.NoError(t, err)
	assert.True(t, hadPrev)
	assert.Equal(t, "ada", prev)

	val, ok, err := s.HGet("user:1", "name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "lovelace", val)

	_, ok, err = s.HGet("user:1", "age")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.HDel("user:1", "name")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.HDel("user:1", "name")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = s.HDel("nonexistent-key", "field")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestWrongTypeAcrossKinds(t *testing.T) {
	s := New()

	_, _, err := s.Set("mixed", "a string")
	require.NoError(t, err)

	_, err = s.LPush("mixed", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WRONGTYPE")

	_, err = s.SAdd("mixed", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WRONGTYPE")

	_, _, err = s.HSet("mixed", "f", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WRONGTYPE")

	// The rejected writes above left "mixed" a string, so Incr is not a
	// cross-type access: it fails on the non-numeric value instead.
	_, err = s.Incr("mixed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "64-bit integer")
}
