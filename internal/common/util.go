package common

// WipeByteArray zeroes the contents of buf in place. Use it to scrub
// password material once it has been handed off.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
