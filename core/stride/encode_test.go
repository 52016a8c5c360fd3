package stride

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEmpty(t *testing.T) {
	rec, err := Encode(nil, 16, OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Length)
	assert.Equal(t, make([]byte, 16), rec.Data)
	assert.False(t, rec.Truncated)
}

func TestEncodePadsWithZeros(t *testing.T) {
	rec, err := Encode([]byte("ACGTGGCC"), 16, OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, 8, rec.Length)
	assert.Equal(t, []byte("ACGTGGCC"), rec.Data[:8])
	assert.Equal(t, make([]byte, 8), rec.Data[8:])
}

func TestEncodeExactlyStride(t *testing.T) {
	in := bytes.Repeat([]byte("A"), 16)
	rec, err := Encode(in, 16, OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, 16, rec.Length)
	assert.Equal(t, in, rec.Data)
	assert.False(t, rec.Truncated)
}

func TestEncodeOverflowReject(t *testing.T) {
	_, err := Encode(bytes.Repeat([]byte("A"), 17), 16, OverflowReject)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverflow))

	var oe *OverflowError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, 17, oe.Length)
	assert.Equal(t, 16, oe.Stride)
}

func TestEncodeOverflowTruncate(t *testing.T) {
	in := append(bytes.Repeat([]byte("A"), 16), 'C')
	rec, err := Encode(in, 16, OverflowTruncate)
	require.NoError(t, err)
	assert.Equal(t, 16, rec.Length)
	assert.True(t, rec.Truncated)
	assert.Equal(t, 17, rec.Original)
	assert.Equal(t, in[:16], rec.Data)
}

func TestEncodeDoesNotAliasInput(t *testing.T) {
	in := []byte("ACGT")
	rec, err := Encode(in, 8, OverflowReject)
	require.NoError(t, err)
	in[0] = 'T'
	assert.Equal(t, byte('A'), rec.Data[0])
}

func TestEncodeInvalidStride(t *testing.T) {
	_, err := Encode([]byte("A"), 0, OverflowReject)
	assert.ErrorIs(t, err, ErrInvalidStride)
}

func TestParseOverflowPolicy(t *testing.T) {
	p, err := ParseOverflowPolicy("truncate")
	require.NoError(t, err)
	assert.Equal(t, OverflowTruncate, p)
	assert.Equal(t, "truncate", p.String())

	p, err = ParseOverflowPolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, OverflowReject, p)

	_, err = ParseOverflowPolicy("skip")
	assert.Error(t, err)
}

func TestEncodePrefixReportsTrueLength(t *testing.T) {
	_, err := EncodePrefix([]byte("ACGT"), 50_000_000, 4, OverflowReject)
	var oe *OverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 50_000_000, oe.Length)

	rec, err := EncodePrefix([]byte("ACGT"), 9, 4, OverflowTruncate)
	require.NoError(t, err)
	assert.True(t, rec.Truncated)
	assert.Equal(t, 9, rec.Original)
	assert.Equal(t, "ACGT", string(rec.Data[:rec.Length]))

	_, err = EncodePrefix([]byte("AC"), 3, 4, OverflowReject)
	assert.Error(t, err, "prefix shorter than the bytes to keep")
}
