package pixel

// Bytes returns the buffer size of a width x height glyph at depth.
func Bytes(width, height, depth int) int {
	return (width*height*depth + 7) / 8
}

// Pack ORs the low depth bits of sample into buf at bit offset, most
// significant bit first. A sample straddling a byte boundary puts its high
// part in the remaining bits of the current byte and the rest in the top
// bits of the next one.
func Pack(buf []byte, offset int, sample uint8, depth int) {
	i, shift := offset/8, offset%8
	v := uint16(sample&Mask(depth)) << (16 - depth - shift)
	buf[i] |= byte(v >> 8)
	if shift+depth > 8 {
		buf[i+1] |= byte(v)
	}
}

// Unpack reads the depth-bit sample stored at bit offset.
func Unpack(buf []byte, offset, depth int) uint8 {
	i, shift := offset/8, offset%8
	v := uint16(buf[i]) << 8
	if shift+depth > 8 {
		v |= uint16(buf[i+1])
	}
	return uint8(v>>(16-depth-shift)) & Mask(depth)
}
