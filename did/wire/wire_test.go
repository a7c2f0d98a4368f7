package wire

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 0x7f, 0x80, 0xff, 300, 16383, 16384,
		1 << 21, 1<<32 - 1, 1 << 32, 1 << 56, math.MaxUint64,
	}

	for _, v := range values {
		encoded := AppendVarint(nil, v)
		got, n, err := ReadVarint(encoded, 0)
		require.NoError(t, err, "value %d", v)
		assert.Equal(t, v, got)
		assert.Equal(t, len(encoded), n)
	}
}

func TestReadVarintAtOffset(t *testing.T) {
	buf := append([]byte{0xde, 0xad}, AppendVarint(nil, 300)...)
	got, n, err := ReadVarint(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), got)
	assert.Equal(t, 2, n)
}

func TestReadVarintTruncated(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		off  int
	}{
		{name: "empty buffer", buf: nil, off: 0},
		{name: "offset past end", buf: []byte{0x01}, off: 1},
		{name: "continuation bit on last byte", buf: []byte{0x80}, off: 0},
		{name: "all continuation bytes", buf: []byte{0x80, 0x80, 0x80}, off: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadVarint(tt.buf, tt.off)
			assert.True(t, errors.Is(err, ErrTruncated))
		})
	}
}

func TestReadVarintOverlong(t *testing.T) {
	// 11 bytes with continuation bits set everywhere.
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x81
	}
	_, _, err := ReadVarint(buf, 0)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestReadLengthDelimited(t *testing.T) {
	payload := []byte("payload")
	buf := AppendVarint(nil, uint64(len(payload)))
	buf = append(buf, payload...)

	got, n, err := ReadLengthDelimited(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, len(buf), n)
}

func TestReadLengthDelimitedTruncated(t *testing.T) {
	buf := AppendVarint(nil, 100)
	buf = append(buf, []byte("short")...)

	_, _, err := ReadLengthDelimited(buf, 0)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestReadLengthDelimitedHugeLength(t *testing.T) {
	buf := AppendVarint(nil, math.MaxUint64)
	_, _, err := ReadLengthDelimited(buf, 0)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestWalkDispatch(t *testing.T) {
	var buf []byte
	buf = AppendBytesField(buf, 1, []byte("first"))
	buf = AppendVarintField(buf, 2, 42)
	buf = AppendBytesField(buf, 9, []byte("ninth"))

	var bytesFields []uint64
	var varintFields []uint64
	var observed []uint64

	err := Walk(buf, FieldHandler{
		Bytes: func(f uint64, p []byte) {
			bytesFields = append(bytesFields, f)
		},
		Varint: func(f uint64, v uint64) {
			varintFields = append(varintFields, f)
			assert.Equal(t, uint64(42), v)
		},
		Observer: func(f uint64) {
			observed = append(observed, f)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 9}, bytesFields)
	assert.Equal(t, []uint64{2}, varintFields)
	assert.Equal(t, []uint64{1, 2, 9}, observed)
}

func TestWalkStopsOnUnsupportedWireType(t *testing.T) {
	var buf []byte
	buf = AppendBytesField(buf, 1, []byte("kept"))
	// Wire type 5 (fixed32) is not supported; the walk must stop here
	// without error and without dispatching anything further.
	buf = AppendTag(buf, 2, WireType(5))
	buf = append(buf, 0xde, 0xad, 0xbe, 0xef)
	buf = AppendBytesField(buf, 3, []byte("never seen"))

	var fields []uint64
	err := Walk(buf, FieldHandler{
		Bytes: func(f uint64, p []byte) { fields = append(fields, f) },
	})
	assert.NoError(t, err)
	assert.Equal(t, []uint64{1}, fields)
}

func TestWalkTruncated(t *testing.T) {
	var buf []byte
	buf = AppendBytesField(buf, 1, []byte("complete"))
	buf = AppendTag(buf, 2, WireLengthDelimited)
	buf = AppendVarint(buf, 50) // claims 50 bytes, none follow

	var fields []uint64
	err := Walk(buf, FieldHandler{
		Bytes: func(f uint64, p []byte) { fields = append(fields, f) },
	})
	assert.True(t, errors.Is(err, ErrTruncated))
	// The field decoded before the truncation point is still delivered.
	assert.Equal(t, []uint64{1}, fields)
}

func TestWalkEmptyBuffer(t *testing.T) {
	err := Walk(nil, FieldHandler{})
	assert.NoError(t, err)
}
