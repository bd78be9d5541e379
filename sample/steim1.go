package sample

import (
	"fmt"

	"github.com/mseedio/mseed/endian"
	"github.com/mseedio/mseed/errs"
)

// computeDiffs returns the n first differences of samples as int64, per the
// Steim convention that the frame's first packed difference is the carry
// from an implicit predecessor of zero (so it is numerically samples[0]);
// every difference after that is the usual samples[i]-samples[i-1]. Using
// int64 lets the caller detect overflow against the target codec's
// packable width exactly, before any truncation to int32.
func computeDiffs(samples []int32) []int64 {
	diffs := make([]int64, len(samples))

	var prior int64
	for i, s := range samples {
		diffs[i] = int64(s) - prior
		prior = int64(s)
	}

	return diffs
}

func steim1PackWords(diffs []int64) ([]steimWord, error) {
	var words []steimWord

	for i := 0; i < len(diffs); {
		remaining := diffs[i:]

		switch {
		case len(remaining) >= 4 && fitsAllInt64(remaining[:4], 8):
			words = append(words, steimWord{nibble: nibble4x8, word: packBits(toInt32(remaining[:4]), 8)})
			i += 4
		case len(remaining) >= 2 && fitsAllInt64(remaining[:2], 16):
			words = append(words, steimWord{nibble: nibbleDnib2, word: packBits(toInt32(remaining[:2]), 16)})
			i += 2
		default:
			if !fitsAllInt64(remaining[:1], 32) {
				return nil, fmt.Errorf("%w: difference %d exceeds 32 bits", errs.ErrSteimRangeError, remaining[0])
			}
			words = append(words, steimWord{nibble: nibbleDnib3, word: packBits(toInt32(remaining[:1]), 32)})
			i++
		}
	}

	return words, nil
}

func fitsAllInt64(vs []int64, bits uint) bool {
	lo := int64(-1) << (bits - 1)
	hi := -lo - 1
	for _, v := range vs {
		if v < lo || v > hi {
			return false
		}
	}

	return true
}

func toInt32(vs []int64) []int32 {
	out := make([]int32, len(vs))
	for i, v := range vs {
		out[i] = int32(v)
	}

	return out
}

// Steim1Encode compresses samples into Steim-1 frames using engine's byte
// order for the 32-bit frame words.
func Steim1Encode(samples []int32, engine endian.EndianEngine) ([]byte, error) {
	if len(samples) == 0 {
		return nil, nil
	}

	diffs := computeDiffs(samples)

	words, err := steim1PackWords(diffs)
	if err != nil {
		return nil, err
	}

	return assembleFrames(int32(samples[0]), int32(samples[len(samples)-1]), words, engine), nil
}

// assembleFrames lays out X0, Xn, and the packed data words across Steim
// frames, zero-filling any unused trailing slots of the final frame.
func assembleFrames(x0, xn int32, words []steimWord, engine endian.EndianEngine) []byte {
	frames := numFrames(len(words), dataSlotCount(0), dataSlotCount(1))

	buf := make([]byte, 0, frames*FrameBytes)

	wi := 0
	for f := 0; f < frames; f++ {
		var raw [FrameWords]uint32
		var nibbles [FrameWords - 1]steimNibble

		slot := firstDataSlot(f)
		if f == 0 {
			raw[1] = uint32(x0)
			raw[2] = uint32(xn)
		}

		for slot <= FrameWords-1 && wi < len(words) {
			raw[slot] = words[wi].word
			nibbles[slot-1] = words[wi].nibble
			slot++
			wi++
		}

		raw[0] = packControlWord(nibbles)
		buf = writeFrameWords(buf, raw, engine)
	}

	return buf
}

// Steim1Decode decompresses numSamples samples from Steim-1 frames.
func Steim1Decode(data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error) {
	return steimDecode(data, numSamples, engine, decodeSteim1Word)
}

// decodeSteim1Word decodes the differences packed into one Steim-1 word
// given its control nibble.
func decodeSteim1Word(nibble steimNibble, word uint32) ([]int32, error) {
	switch nibble {
	case nibbleNonData:
		return nil, nil
	case nibble4x8:
		return unpackBits(word, 4, 8), nil
	case nibbleDnib2:
		return unpackBits(word, 2, 16), nil
	case nibbleDnib3:
		return []int32{int32(word)}, nil
	default:
		return nil, fmt.Errorf("%w: impossible nibble %d", errs.ErrBadBlockette, nibble)
	}
}

// steimDecode is shared by Steim1Decode and Steim2Decode: it walks frames,
// recovers X0/Xn, unpacks each data word into its differences via decodeWord,
// and integrates them starting from an implicit predecessor of zero — the
// first difference is the carry that reconstructs X0, not X0 itself — then
// verifies the reconstructed first and final samples against X0/Xn.
func steimDecode(data []byte, numSamples int, engine endian.EndianEngine, decodeWord func(steimNibble, uint32) ([]int32, error)) ([]int32, error) {
	if numSamples == 0 {
		return nil, nil
	}
	if numSamples < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", errs.ErrFieldOutOfRange, numSamples)
	}

	samples := make([]int32, 0, numSamples)

	frameIndex := 0
	var x0, xn int32
	haveX0 := false
	var prior int32

	for len(samples) < numSamples {
		words, err := readFrameWords(data, frameIndex, engine)
		if err != nil {
			return nil, err
		}

		nibbles := unpackControlWord(words[0])

		if frameIndex == 0 {
			x0 = int32(words[1])
			xn = int32(words[2])
			haveX0 = true
		}

		for slot := firstDataSlot(frameIndex); slot <= FrameWords-1 && len(samples) < numSamples; slot++ {
			nibble := nibbles[slot-1]
			diffs, err := decodeWord(nibble, words[slot])
			if err != nil {
				return nil, err
			}

			for _, d := range diffs {
				if len(samples) >= numSamples {
					break
				}
				prior += d
				samples = append(samples, prior)
			}
		}

		frameIndex++
	}

	if !haveX0 {
		return nil, fmt.Errorf("%w: no frames decoded", errs.ErrSteimIntegrityError)
	}
	if samples[0] != x0 {
		return nil, fmt.Errorf("%w: first sample %d != X0 %d", errs.ErrSteimIntegrityError, samples[0], x0)
	}
	if samples[len(samples)-1] != xn {
		return nil, fmt.Errorf("%w: final sample %d != Xn %d", errs.ErrSteimIntegrityError, samples[len(samples)-1], xn)
	}

	return samples, nil
}
