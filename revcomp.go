package genoindex

// ReverseComplement returns the DNA reverse complement of p: the byte
// sequence reversed, with A<->T and C<->G substituted. Bytes outside the
// alphabet pass through unchanged, so the operation is always an involution:
// ReverseComplement(ReverseComplement(p)) == p for any p.
func ReverseComplement(p []byte) []byte {
	n := len(p)
	out := make([]byte, n)
	for i, b := range p {
		out[n-1-i] = complement[b]
	}
	return out
}
