package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeEmptyInputIsNoOp(t *testing.T) {
	result, err := Tokenize([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, OpNoOp, result.Op)
	assert.Empty(t, result.Argv)
}

func TestTokenizeOperatorIsCaseInsensitive(t *testing.T) {
	result, err := Tokenize([]byte("get key1"))
	require.NoError(t, err)
	assert.Equal(t, OpGet, result.Op)
	assert.Equal(t, []string{"key1"}, result.Argv)

	result, err = Tokenize([]byte("GeT key1"))
	require.NoError(t, err)
	assert.Equal(t, OpGet, result.Op)
}

func TestTokenizeArgvIsCaseSensitive(t *testing.T) {
	result, err := Tokenize([]byte("SET Key Val"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Key", "Val"}, result.Argv)
}

func TestTokenizeUnrecognizedOperator(t *testing.T) {
	result, err := Tokenize([]byte("FROBNICATE a b"))
	require.NoError(t, err)
	assert.Equal(t, OpUnrecognized, result.Op)
}

func TestTokenizeQuotedSubstringIsOneToken(t *testing.T) {
	result, err := Tokenize([]byte(`SET greeting "hello world"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"greeting", "hello world"}, result.Argv)
}

func TestTokenizeUnterminatedQuoteConsumesToEOF(t *testing.T) {
	result, err := Tokenize([]byte(`SET greeting "hello world`))
	require.NoError(t, err)
	assert.Equal(t, []string{"greeting", "hello world"}, result.Argv)
}

func TestTokenizeQuoteHasNoBackslashEscaping(t *testing.T) {
	result, err := Tokenize([]byte(`SET k "a\"b"`))
	require.NoError(t, err)
	// The backslash is literal and does not escape the quote that follows
	// it, so the quoted token ends at "a\", leaving `b"` as a second, bare
	// token (the trailing quote is not itself a separator).
	assert.Equal(t, []string{"k", `a\`, `b"`}, result.Argv)
}

func TestTokenizeNULAndNewlineAreSeparators(t *testing.T) {
	result, err := Tokenize([]byte("GET k1\x00\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, result.Argv)
}

func TestTokenizeWhitespacePaddingIsIdempotent(t *testing.T) {
	base, err := Tokenize([]byte("SET k v"))
	require.NoError(t, err)

	padded, err := Tokenize([]byte("   SET k v  \x00\x00"))
	require.NoError(t, err)

	assert.Equal(t, base.Op, padded.Op)
	assert.Equal(t, base.Argv, padded.Argv)
}

func TestTokenizeRejectsNonUTF8(t *testing.T) {
	_, err := Tokenize([]byte{0xff, 0xfe, 0xfd})
	require.Error(t, err)
	assert.IsType(t, ErrNotUTF8{}, err)
}
