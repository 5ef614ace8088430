package golomb

import "github.com/ausocean/hybridcodec/codec/hybrid/bitstream"

// EncodeSigned frames a signed residual e as a sign bit (1 if e < 0,
// else 0) followed by Golomb(|e|). Zero is always framed with sign
// bit 0.
func (c *Coder) EncodeSigned(w *bitstream.Writer, e int32) error {
	var sign uint64
	var mag uint32
	if e < 0 {
		sign = 1
		mag = uint32(-e)
	} else {
		mag = uint32(e)
	}
	if err := w.WriteBits(sign, 1); err != nil {
		return err
	}
	return c.Encode(w, mag)
}

// DecodeSigned reverses EncodeSigned.
func (c *Coder) DecodeSigned(r *bitstream.Reader) (int32, error) {
	sign, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	mag, err := c.Decode(r)
	if err != nil {
		return 0, err
	}
	if sign == 1 {
		return -int32(mag), nil
	}
	return int32(mag), nil
}
