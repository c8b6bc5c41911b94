package wire

// Decimal is an opaque 128-bit decimal value: four 32-bit little-endian
// limbs with sign/scale packed into the high limb, per the wire format's
// decimal encoding. This package does no arithmetic on it — only
// encode/decode and equality, per spec.md's "An implementer may expose
// this as an opaque 128-bit value".
type Decimal [16]byte
