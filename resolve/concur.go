package resolve

import (
	"runtime"
	"sync"

	"github.com/gosuri/uiprogress"
)

// fillMemberships computes every candidate's drainage membership before any
// label is finalized. Each worker holds one full-raster membership grid, so
// the pool is bounded; the flow model itself is shared read-only.
func (r *Resolver) fillMemberships(cands []*candidate) {
	nw := r.Nworkers
	if nw < 1 {
		nw = runtime.NumCPU()
	}
	if nw == 1 || len(cands) == 1 {
		for _, c := range cands {
			r.membership(c)
		}
		return
	}

	var bar *uiprogress.Bar
	if r.ShowProgress {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(cands)).AppendCompleted().PrependElapsed()
	}

	queue := make(chan *candidate, len(cands))
	for _, c := range cands {
		queue <- c
	}
	close(queue)

	var wg sync.WaitGroup
	wg.Add(nw)
	for w := 0; w < nw; w++ {
		go func() {
			defer wg.Done()
			for c := range queue {
				r.membership(c)
				if bar != nil {
					bar.Incr()
				}
			}
		}()
	}
	wg.Wait() // merge barrier

	if r.ShowProgress {
		uiprogress.Stop()
	}
}
