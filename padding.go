package stun

// padding is the STUN attribute alignment boundary: every attribute TLV is
// padded on the wire to a multiple of 4 bytes, while the length field in
// the TLV reports the unpadded payload length (spec invariant I2).
const padding = 4

// nearestPaddedValueLength rounds l up to the next multiple of padding.
func nearestPaddedValueLength(l int) int {
	n := padding * (l / padding)
	if n < l {
		n += padding
	}
	return n
}
