package photometric

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/joshuapare/tiffkit/tiff/pixel"
)

// Job pairs one strip with the destination region it covers.
type Job struct {
	Strip  Strip
	Region types.Region
}

// DecodeStrips decodes jobs concurrently into dst, one goroutine per job.
// Regions must be pairwise disjoint; overlapping regions are rejected with
// types.ErrInvalidLayout before any decoding starts. All failures are
// returned joined; on failure the contents of every region are unspecified.
func DecodeStrips(dec Decoder, jobs []Job, dst pixel.Rows) error {
	for i := range jobs {
		for j := i + 1; j < len(jobs); j++ {
			if jobs[i].Region.Overlaps(jobs[j].Region) {
				return fmt.Errorf("strips %d and %d overlap: %w", i, j, types.ErrInvalidLayout)
			}
		}
	}

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := dec.Decode(job.Strip, dst, job.Region); err != nil {
				errs[i] = fmt.Errorf("strip %d: %w", i, err)
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
