package ignition

import "golang.org/x/exp/slices"

func sortSegments(segs []IgnitedSegment) {
	slices.SortFunc(segs, func(a, b IgnitedSegment) int {
		al, bl := a.Length(), b.Length()
		switch {
		case al > bl:
			return -1
		case al < bl:
			return 1
		case a.TimeStep < b.TimeStep:
			return -1
		case a.TimeStep > b.TimeStep:
			return 1
		default:
			return 0
		}
	})
}
