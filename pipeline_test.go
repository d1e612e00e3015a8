package slide

import (
	"testing"
)

func TestTask(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		counters := make([]*int, 10)
		for i := range counters {
			counters[i] = new(int)
		}

		task(workers, counters, func(c *int) {
			*c++
		})

		for i, c := range counters {
			if *c != 1 {
				t.Errorf("%d workers: element %d processed %d times, want 1", workers, i, *c)
			}
		}
	}

	// empty input
	task(4, []*int(nil), func(c *int) {
		t.Errorf("fn called on empty input")
	})
}
