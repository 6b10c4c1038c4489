package colour

// Interpolate returns count colours stepping channel-wise from start towards
// end. The channel step is (end-start)/count and each value is truncated to
// an integer, so index 0 is exactly start while the last colour approaches
// but does not always reach end. Existing documents were coloured with this
// behaviour; keep the truncation when touching this.
//
// count must be at least 1; smaller values fail with ErrInvalidArgument.
func Interpolate(count int, start, end RGB) ([]RGB, error) {
	if count < 1 {
		return nil, ErrInvalidArgument
	}

	rs := channelRange(start.R, end.R, count)
	gs := channelRange(start.G, end.G, count)
	bs := channelRange(start.B, end.B, count)

	out := make([]RGB, count)
	for i := range out {
		out[i] = RGB{R: rs[i], G: gs[i], B: bs[i]}
	}
	return out, nil
}

// channelRange interpolates a single channel. Equal endpoints produce a
// constant channel.
func channelRange(start, end uint8, count int) []uint8 {
	out := make([]uint8, count)
	if start == end {
		for i := range out {
			out[i] = start
		}
		return out
	}

	step := (float64(end) - float64(start)) / float64(count)
	cur := float64(start)
	for i := range out {
		out[i] = uint8(cur)
		cur += step
	}
	return out
}
