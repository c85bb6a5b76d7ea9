package scale

// DecodedLen reads only the Compact<u32> element count off the front of an
// encoded sequence, answering "how many items does this blob hold" without
// decoding any element. It applies to every length-prefixed container, and to
// an encoded tuple whose first element is one, since the prefix leads the
// bytes either way.
func DecodedLen(encoded []byte) (int, error) {
	r := Reader{r: NewBytesReader(encoded), maxDepth: DefaultMaxDepth, maxPrealloc: DefaultMaxPreallocation}
	var c uint32
	r.ReadCompactUint32(&c)
	if r.err != nil {
		return 0, r.err
	}
	return int(c), nil
}
