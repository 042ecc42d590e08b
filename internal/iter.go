package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeq2Limit stops a dual-return iterator after count pairs.
func IterSeq2Limit[T1 any, T2 any](seq iter.Seq2[T1, T2], count int) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		if count <= 0 {
			return
		}
		n := 0
		for val1, val2 := range seq {
			if !yield(val1, val2) {
				return
			}
			n++
			if n == count {
				return
			}
		}
	}
}
