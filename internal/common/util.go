package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Password buffers read from the terminal are wiped once copied.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
