package skiplist

import (
	"math"
	"testing"
)

func TestRandomHeightDistribution(t *testing.T) {
	l := New[int, int]()
	l.hot.seed.Store(0x123456789abcdef)
	// Pre-populate every head slot so tall draws are not walked back down
	// and the raw geometric distribution is observable.
	for i := range l.head.pointers {
		l.head.pointers[i].Store(&link[int, int]{})
	}

	numSamples := 1000000
	counts := make(map[int]int)
	for n := 0; n < numSamples; n++ {
		counts[l.randomHeight()]++
	}

	// Check if the distribution is roughly geometric.
	// With p = 1/2, we expect the number of towers of height i+1 to be
	// roughly half the number of towers of height i.
	const p = 0.5
	for i := 1; i < MaxHeight; i++ {
		count1 := counts[i]
		if count1 == 0 {
			continue
		}

		count2 := counts[i+1]

		ratio := float64(count2) / float64(count1)

		// The number of towers growing from height i to i+1 follows a
		// Binomial(count1, p) distribution, so the ratio count2/count1
		// has mean p and variance p(1-p)/count1. We tolerate deviations
		// up to five standard deviations, which keeps the check tight
		// for the densely populated lower heights while avoiding
		// spurious failures once the sample sizes thin out.
		stdDev := math.Sqrt(p * (1 - p) / float64(count1))
		tolerance := 5 * stdDev

		if math.Abs(ratio-p) > tolerance {
			t.Errorf("Expected ratio between height %d and %d to be around %.2f ± %.4f, but got %.2f", i, i+1, p, tolerance, ratio)
		}
	}
}

func TestRandomHeightWithinRange(t *testing.T) {
	l := New[int, int]()
	for i := range l.head.pointers {
		l.head.pointers[i].Store(&link[int, int]{})
	}

	for n := 0; n < 10000; n++ {
		h := l.randomHeight()
		if h < 1 || h > MaxHeight {
			t.Fatalf("height %d out of range [1, %d]", h, MaxHeight)
		}
	}
}

func TestRandomHeightStaysLowOnEmptyList(t *testing.T) {
	l := New[int, int]()

	// With no levels in use the draw is walked down so the list does not
	// grow tall towers before the levels under them carry nodes.
	for n := 0; n < 10000; n++ {
		if h := l.randomHeight(); h > 3 {
			t.Fatalf("empty list produced height %d", h)
		}
	}
}

func TestMaxHeightHintGrows(t *testing.T) {
	l := New[int, int]()
	if got := l.hot.maxHeight.Load(); got != 1 {
		t.Fatalf("fresh list should start with hint 1, got %d", got)
	}

	for i := 0; i < 10000; i++ {
		l.Insert(i, i).Release()
	}

	hint := l.hot.maxHeight.Load()
	if hint <= 1 {
		t.Fatalf("hint did not grow past 1 after 10000 inserts")
	}
	if hint > MaxHeight {
		t.Fatalf("hint %d exceeds MaxHeight", hint)
	}
}
