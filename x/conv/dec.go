package conv

// AppendUint appends the base-10 form of n to dst, no leading zeros.
// No allocations beyond dst growth; no fmt/strconv dependency.
func AppendUint(dst []byte, n uint32) []byte {
	if n == 0 {
		return append(dst, '0')
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, buf[i:]...)
}

// ParseUint32 reads a base-10 unsigned integer. It rejects empty input,
// non-digit bytes and values that do not fit in 32 bits.
func ParseUint32(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
		if v > 0xFFFFFFFF {
			return 0, false
		}
	}
	return uint32(v), true
}
