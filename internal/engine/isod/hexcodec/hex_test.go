package hexcodec_test

import (
	"errors"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bud.dev/bud/internal/core/domain"
	"go.bud.dev/bud/internal/engine/isod/hexcodec"
)

func TestEncode_RoundTripsThroughDecode(t *testing.T) {
	f := func(b []byte) bool {
		encoded, err := hexcodec.Encode(b)
		if err != nil {
			return false
		}
		decoded, err := hexcodec.Decode(&encoded)
		if err != nil {
			return false
		}
		return string(decoded) == string(b) || (len(decoded) == 0 && len(b) == 0)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestDecode_UppercasesThroughEncode(t *testing.T) {
	lower := "deadbeef"
	decoded, err := hexcodec.Decode(&lower)
	require.NoError(t, err)

	reencoded, err := hexcodec.Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, "DEADBEEF", reencoded)
}

func TestEncode_NilArgument(t *testing.T) {
	_, err := hexcodec.Encode(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, "argument is null", err.Error())
}

func TestDecode_NilArgument(t *testing.T) {
	_, err := hexcodec.Decode(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, "argument is null", err.Error())
}

func TestDecode_OddLength(t *testing.T) {
	s := "abc"
	_, err := hexcodec.Decode(&s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, "The given string has an odd length. Hex strings must be of even length.", err.Error())
}

func TestDecode_InvalidDigit(t *testing.T) {
	s := "zz"
	_, err := hexcodec.Decode(&s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, "The character 'z' is not a valid hexadecimal digit. Allowed characters: 0-9, a-f, A-F.", err.Error())
}

func TestDecode_EmptyStringIsValid(t *testing.T) {
	s := ""
	decoded, err := hexcodec.Decode(&s)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
