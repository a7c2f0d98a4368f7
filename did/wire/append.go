package wire

// AppendVarint appends v in base-128 little-endian form.
func AppendVarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendTag appends a field tag for the given field number and wire type.
func AppendTag(dst []byte, fieldNumber uint64, wt WireType) []byte {
	return AppendVarint(dst, fieldNumber<<3|uint64(wt))
}

// AppendVarintField appends a complete varint field.
func AppendVarintField(dst []byte, fieldNumber uint64, v uint64) []byte {
	dst = AppendTag(dst, fieldNumber, WireVarint)
	return AppendVarint(dst, v)
}

// AppendBytesField appends a complete length-delimited field.
func AppendBytesField(dst []byte, fieldNumber uint64, payload []byte) []byte {
	dst = AppendTag(dst, fieldNumber, WireLengthDelimited)
	dst = AppendVarint(dst, uint64(len(payload)))
	return append(dst, payload...)
}
