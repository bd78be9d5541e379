package sample

import (
	"fmt"

	"github.com/mseedio/mseed/endian"
	"github.com/mseedio/mseed/errs"
)

// steim2 dnib codes, embedded in the top 2 bits of a word whose nibble is
// nibbleDnib2 (0b10) or nibbleDnib3 (0b11).
const (
	dnib1x30 uint32 = 0b01
	dnib2x15 uint32 = 0b10
	dnib3x10 uint32 = 0b11
	dnib5x6  uint32 = 0b00
	dnib6x5  uint32 = 0b01
	dnib7x4  uint32 = 0b10
)

func steim2PackWords(diffs []int64) ([]steimWord, error) {
	var words []steimWord

	for i := 0; i < len(diffs); {
		remaining := diffs[i:]

		switch {
		case len(remaining) >= 7 && fitsAllInt64(remaining[:7], 4):
			words = append(words, steim2Word(nibbleDnib3, dnib7x4, toInt32(remaining[:7]), 4))
			i += 7
		case len(remaining) >= 6 && fitsAllInt64(remaining[:6], 5):
			words = append(words, steim2Word(nibbleDnib3, dnib6x5, toInt32(remaining[:6]), 5))
			i += 6
		case len(remaining) >= 5 && fitsAllInt64(remaining[:5], 6):
			words = append(words, steim2Word(nibbleDnib3, dnib5x6, toInt32(remaining[:5]), 6))
			i += 5
		case len(remaining) >= 4 && fitsAllInt64(remaining[:4], 8):
			words = append(words, steimWord{nibble: nibble4x8, word: packBits(toInt32(remaining[:4]), 8)})
			i += 4
		case len(remaining) >= 3 && fitsAllInt64(remaining[:3], 10):
			words = append(words, steim2Word(nibbleDnib2, dnib3x10, toInt32(remaining[:3]), 10))
			i += 3
		case len(remaining) >= 2 && fitsAllInt64(remaining[:2], 15):
			words = append(words, steim2Word(nibbleDnib2, dnib2x15, toInt32(remaining[:2]), 15))
			i += 2
		case fitsAllInt64(remaining[:1], 30):
			words = append(words, steim2Word(nibbleDnib2, dnib1x30, toInt32(remaining[:1]), 30))
			i++
		default:
			return nil, fmt.Errorf("%w: difference %d exceeds 30 bits", errs.ErrSteimRangeError, remaining[0])
		}
	}

	return words, nil
}

func steim2Word(nibble steimNibble, dnib uint32, values []int32, bits uint) steimWord {
	return steimWord{nibble: nibble, word: dnib<<30 | packBits(values, bits)}
}

// Steim2Encode compresses samples into Steim-2 frames using engine's byte
// order for the 32-bit frame words.
func Steim2Encode(samples []int32, engine endian.EndianEngine) ([]byte, error) {
	if len(samples) == 0 {
		return nil, nil
	}

	diffs := computeDiffs(samples)

	words, err := steim2PackWords(diffs)
	if err != nil {
		return nil, err
	}

	return assembleFrames(int32(samples[0]), int32(samples[len(samples)-1]), words, engine), nil
}

// Steim2Decode decompresses numSamples samples from Steim-2 frames.
func Steim2Decode(data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error) {
	return steimDecode(data, numSamples, engine, decodeSteim2Word)
}

func decodeSteim2Word(nibble steimNibble, word uint32) ([]int32, error) {
	switch nibble {
	case nibbleNonData:
		return nil, nil
	case nibble4x8:
		return unpackBits(word, 4, 8), nil
	case nibbleDnib2:
		payload := word & 0x3FFFFFFF
		switch word >> 30 {
		case dnib1x30:
			return unpackBits(payload, 1, 30), nil
		case dnib2x15:
			return unpackBits(payload, 2, 15), nil
		case dnib3x10:
			return unpackBits(payload, 3, 10), nil
		default:
			return nil, fmt.Errorf("%w: invalid dnib for nibble 10", errs.ErrBadBlockette)
		}
	case nibbleDnib3:
		payload := word & 0x3FFFFFFF
		switch word >> 30 {
		case dnib5x6:
			return unpackBits(payload, 5, 6), nil
		case dnib6x5:
			return unpackBits(payload, 6, 5), nil
		case dnib7x4:
			return unpackBits(payload, 7, 4), nil
		default: // 0b11: reserved / non-data
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("%w: impossible nibble %d", errs.ErrBadBlockette, nibble)
	}
}
