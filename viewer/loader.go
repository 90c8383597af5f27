package viewer

import "image"

// loadJob asks the loader goroutine to produce texture pixels. Either source
// or img is set; img carries host-decoded pixels that only need preparing.
type loadJob struct {
	seq    uint64
	source string
	img    image.Image
}

// loadResult is what the loader hands back over the result channel.
type loadResult struct {
	seq    uint64
	source string
	pix    *image.RGBA
	err    error
}

// loader decodes and prepares panorama textures off the frame loop. One
// worker goroutine consumes jobs in order; the viewer tags each job with a
// monotonically increasing sequence number and ignores results older than
// the latest request, so the last LoadImage call always wins even when an
// earlier decode finishes after a later one.
type loader struct {
	jobs     chan loadJob
	results  chan loadResult
	maxWidth int

	// decode is swapped out by tests to simulate slow or failing decodes.
	decode func(source string) (image.Image, error)
}

func newLoader(maxWidth int) *loader {
	l := &loader{
		jobs:     make(chan loadJob, 1),
		results:  make(chan loadResult, 4),
		maxWidth: maxWidth,
		decode:   DecodeSource,
	}
	go l.run()
	return l
}

// submit queues a job, displacing any job that is still waiting. A decode
// already in flight is not interrupted; its stale result is discarded by the
// sequence check on the consuming side.
func (l *loader) submit(job loadJob) {
	for {
		select {
		case l.jobs <- job:
			return
		default:
		}
		select {
		case <-l.jobs:
		default:
		}
	}
}

func (l *loader) close() {
	close(l.jobs)
}

func (l *loader) run() {
	for job := range l.jobs {
		img := job.img
		if img == nil {
			var err error
			img, err = l.decode(job.source)
			if err != nil {
				l.results <- loadResult{seq: job.seq, source: job.source, err: err}
				continue
			}
		}
		l.results <- loadResult{
			seq:    job.seq,
			source: job.source,
			pix:    PrepareTexture(img, l.maxWidth),
		}
	}
}
