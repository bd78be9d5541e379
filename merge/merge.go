// Package merge joins sequences of contiguous, time-ordered MiniSEED v3
// records into larger records, decompressing and re-encoding when the
// records' encoding is differential and the caller opts in.
package merge

import (
	"fmt"

	"github.com/mseedio/mseed/internal/options"
	"github.com/mseedio/mseed/seedtime"
	"github.com/mseedio/mseed/v3"
)

// defaultMaxOutputBytes is the maximum payload size, in bytes, of a
// decompress-and-re-encode merge output record, unless overridden.
const defaultMaxOutputBytes = 4096

// Config controls merge behavior.
type Config struct {
	decomp         bool
	maxOutputBytes int
}

func newConfig() *Config {
	return &Config{maxOutputBytes: defaultMaxOutputBytes}
}

// WithDecomp enables decompress-and-re-encode merging: records with
// differing encodings, or the same Steim encoding, are
// decompressed to samples, concatenated, and re-encoded rather than left
// unmerged.
func WithDecomp() options.Option[*Config] {
	return options.NoError(func(c *Config) { c.decomp = true })
}

// WithMaxOutputBytes overrides the maximum payload size of a merged output
// record produced by the decompress-and-re-encode path.
func WithMaxOutputBytes(n int) options.Option[*Config] {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("merge: max output bytes must be positive, got %d", n)
		}
		c.maxOutputBytes = n

		return nil
	})
}

// Merge joins a time-ordered stream of v3 records into as few output
// records as the mergeability rules and configuration allow, preserving
// overall sample order. Non-contiguous or incompatible adjacent records are
// passed through unchanged as their own output records.
func Merge(records []*v3.Record, opts ...options.Option[*Config]) ([]*v3.Record, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var out []*v3.Record
	for _, group := range groupContiguous(records, cfg) {
		merged, err := mergeGroup(group, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, merged...)
	}

	return out, nil
}

// groupContiguous partitions records into maximal runs of mutually
// mergeable adjacent records, per the rules in mergeable.
func groupContiguous(records []*v3.Record, cfg *Config) [][]*v3.Record {
	var groups [][]*v3.Record

	var current []*v3.Record
	for _, r := range records {
		if len(current) == 0 {
			current = append(current, r)

			continue
		}

		if mergeable(current[len(current)-1], r, cfg) {
			current = append(current, r)

			continue
		}

		groups = append(groups, current)
		current = []*v3.Record{r}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

// mergeable implements the adjacency rule: same source id, same sample
// rate, same encoding (or decomp enabled), and the next record's start
// time falls within half a sample period of the previous record's
// predicted next-sample time.
func mergeable(a, b *v3.Record, cfg *Config) bool {
	if a.SourceId != b.SourceId {
		return false
	}
	if a.Header.SampleRateOrPeriod != b.Header.SampleRateOrPeriod {
		return false
	}
	if a.Header.Encoding != b.Header.Encoding && !cfg.decomp {
		return false
	}

	period := a.Header.SamplePeriodSeconds()
	predictedNext := seedtime.AddSamples(a.Header.StartTime(), period, int(a.Header.NumSamples))

	tolerance := 0.5 * period

	return abs(seedtime.DiffSeconds(b.Header.StartTime(), predictedNext)) <= tolerance
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
