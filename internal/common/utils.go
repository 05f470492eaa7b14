package common

// WipeByteArray overwrites b with zeros. Used for secrets read from the
// terminal once they are no longer needed. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
