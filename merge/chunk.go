package merge

import (
	"fmt"

	"github.com/mseedio/mseed/format"
	"github.com/mseedio/mseed/v3"
)

// chunk is one re-encoded slice of a decompress-and-re-encode merge: the
// samples it covers and their encoded payload.
type chunk struct {
	samples []int32
	payload []byte
}

// chunkEncode splits samples into consecutive runs, each encoded in enc,
// such that every run's encoded payload is at most maxBytes. It relies on
// the sample codecs being monotonic in output size as input length grows,
// which holds for every encoding this library implements, and finds the
// largest run fitting the budget by binary search to avoid re-encoding
// one sample at a time.
func chunkEncode(samples []int32, enc format.PayloadEncoding, maxBytes int) ([]chunk, error) {
	var out []chunk

	for i := 0; i < len(samples); {
		n, payload, err := largestFittingRun(samples[i:], enc, maxBytes)
		if err != nil {
			return nil, err
		}

		out = append(out, chunk{samples: samples[i : i+n], payload: payload})
		i += n
	}

	return out, nil
}

func largestFittingRun(samples []int32, enc format.PayloadEncoding, maxBytes int) (int, []byte, error) {
	firstPayload, err := v3.EncodeInt32Samples(samples[:1], enc)
	if err != nil {
		return 0, nil, err
	}
	if len(firstPayload) > maxBytes {
		return 0, nil, fmt.Errorf("merge: single sample encodes to %d bytes, exceeding max output bytes %d", len(firstPayload), maxBytes)
	}

	lo, hi := 1, len(samples)
	best, bestPayload := 1, firstPayload

	for lo <= hi {
		mid := (lo + hi) / 2

		payload, err := v3.EncodeInt32Samples(samples[:mid], enc)
		if err != nil {
			return 0, nil, err
		}

		if len(payload) <= maxBytes {
			best, bestPayload = mid, payload
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return best, bestPayload, nil
}
