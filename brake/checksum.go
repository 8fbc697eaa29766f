package brake

// parity16 returns the xor of all bits of b.
func parity16(b uint16) uint16 {
	b ^= b >> 8
	b ^= b >> 4
	b &= 0xf
	return (0x6996 >> b) & 1
}

// Checksum computes the brake's 16-bit frame checksum over the hex-encoded
// payload, start marker excluded (it is folded into ChecksumSeed).
//
// Note that tmp is 9 bits wide once folded with itself, the top bit
// ends up in bit 14 of the register. Captured device frames confirm it.
func Checksum(buf []byte) uint16 {
	reg := ChecksumSeed
	for _, a := range buf {
		tmp := uint16(a) ^ (reg & 0xff)
		reg >>= 8
		if parity16(tmp) == 1 {
			reg ^= ChecksumPoly
		}
		tmp ^= tmp << 1
		reg ^= tmp << 6
	}
	return reg
}
