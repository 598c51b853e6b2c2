package lib

import "fmt"
import "math"
import "sort"
import "strconv"
import "strings"

// HistogramInt64 count int64 samples in fixed width buckets, along with
// the min, max, mean and deviation of all samples. Samples below `from`
// and at or above `till` land in the two open ended buckets.
type HistogramInt64 struct {
	n         int64
	minval    int64
	maxval    int64
	sum       int64
	sumsq     float64
	histogram []int64
	init      bool

	from  int64
	till  int64
	width int64
}

// NewhistorgramInt64 return a new histogram for buckets of `width`
// between [from, till).
func NewhistorgramInt64(from, till, width int64) *HistogramInt64 {
	from, till = (from/width)*width, (till/width)*width
	nbuckets := 1 + ((till - from) / width) + 1
	return &HistogramInt64{
		from: from, till: till, width: width,
		histogram: make([]int64, nbuckets),
	}
}

// Add a sample to this histogram.
func (h *HistogramInt64) Add(sample int64) {
	h.n, h.sum = h.n+1, h.sum+sample
	h.sumsq += float64(sample) * float64(sample)
	if !h.init || sample < h.minval {
		h.minval, h.init = sample, true
	}
	if sample > h.maxval {
		h.maxval = sample
	}

	switch {
	case sample < h.from:
		h.histogram[0]++
	case sample >= h.till:
		h.histogram[len(h.histogram)-1]++
	default:
		h.histogram[1+((sample-h.from)/h.width)]++
	}
}

// Min return minimum value from sample.
func (h *HistogramInt64) Min() int64 {
	return h.minval
}

// Max return maximum value from sample.
func (h *HistogramInt64) Max() int64 {
	return h.maxval
}

// Samples return total number of samples in the set.
func (h *HistogramInt64) Samples() int64 {
	return h.n
}

// Sum return the sum of all sample values.
func (h *HistogramInt64) Sum() int64 {
	return h.sum
}

// Mean return the average value of all samples.
func (h *HistogramInt64) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return int64(float64(h.sum) / float64(h.n))
}

// Variance return the squared deviation of samples from their mean.
func (h *HistogramInt64) Variance() int64 {
	if h.n == 0 {
		return 0
	}
	nF, meanF := float64(h.n), float64(h.Mean())
	return int64((h.sumsq / nF) - (meanF * meanF))
}

// SD return the standard deviation of samples.
func (h *HistogramInt64) SD() int64 {
	if h.n == 0 {
		return 0
	}
	return int64(math.Sqrt(float64(h.Variance())))
}

// Clone copies the entire instance.
func (h *HistogramInt64) Clone() *HistogramInt64 {
	newh := *h
	newh.histogram = make([]int64, len(h.histogram))
	copy(newh.histogram, h.histogram)
	return &newh
}

// Stats return cumulative counts keyed by bucket's upper bound, "30"
// is the number of samples less than 30. Buckets after the last
// non-empty one are skipped and "+" counts every sample.
func (h *HistogramInt64) Stats() map[string]int64 {
	m := make(map[string]int64)
	last := len(h.histogram) - 1
	for last >= 0 && h.histogram[last] == 0 {
		last--
	}
	if last < 0 {
		return m
	}
	cumm := int64(0)
	for j := 0; j < last; j++ {
		cumm += h.histogram[j]
		m[strconv.FormatInt(h.from+(int64(j)*h.width), 10)] = cumm
	}
	m["+"] = h.n
	return m
}

// Fullstats includes mean,variance,stddeviance in the Stats().
func (h *HistogramInt64) Fullstats() map[string]interface{} {
	hmap := make(map[string]interface{})
	for k, v := range h.Stats() {
		hmap[k] = v
	}
	return map[string]interface{}{
		"samples":     h.Samples(),
		"min":         h.Min(),
		"max":         h.Max(),
		"mean":        h.Mean(),
		"variance":    h.Variance(),
		"stddeviance": h.SD(),
		"histogram":   hmap,
	}
}

// Logstring return Fullstats as loggable string, with keys sorted.
func (h *HistogramInt64) Logstring() string {
	stats, keys := h.Fullstats(), []string{}
	for k := range stats {
		if k != "histogram" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	ss := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		ss = append(ss, fmt.Sprintf(`"%v": %v`, key, stats[key]))
	}
	ss = append(ss, fmt.Sprintf(`"histogram": %v`, h.logbuckets()))
	return "{" + strings.Join(ss, ",") + "}"
}

func (h *HistogramInt64) logbuckets() string {
	m, bounds := h.Stats(), []int64{}
	for k := range m {
		if k != "+" {
			n, _ := strconv.ParseInt(k, 10, 64)
			bounds = append(bounds, n)
		}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	hs := make([]string, 0, len(bounds)+1)
	for _, n := range bounds {
		key := strconv.FormatInt(n, 10)
		hs = append(hs, fmt.Sprintf(`"%v": %v`, key, m[key]))
	}
	hs = append(hs, fmt.Sprintf(`"+": %v`, m["+"]))
	return "{" + strings.Join(hs, ",") + "}"
}
