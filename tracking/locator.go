package tracking

// Locate finds the controller in one frame half. It returns the position in
// window pixels, or false when the half is indistinguishable from its
// background or no run of changed columns stands out.
func Locate(bg Background, live Profile, windowWidth int) (uint32, bool) {
	d := Distance(bg.Profile, live)
	avg := AverageDistance(d)
	if avg < bg.Threshold {
		return 0, false
	}

	from, to, ok := strongestStreak(d, avg)
	if !ok {
		return 0, false
	}
	mid := (to-from)/2 + from
	return uint32(mid * windowWidth / len(d)), true
}

// strongestStreak returns the inclusive bounds of the run of columns above
// avg with the largest sum of squared distances. Ties keep the earlier run.
func strongestStreak(d Profile, avg byte) (from, to int, ok bool) {
	best := -1
	start := -1

	closeAt := func(end int) {
		rating := 0
		for _, v := range d[start : end+1] {
			rating += int(v) * int(v)
		}
		if rating > best {
			best, from, to, ok = rating, start, end, true
		}
		start = -1
	}

	for i, v := range d {
		if v > avg {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			closeAt(i - 1)
		}
	}
	if start >= 0 {
		closeAt(len(d) - 1)
	}
	return from, to, ok
}
