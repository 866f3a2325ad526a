// Package internal holds helpers shared by the pdp8 packages.
package internal

import (
	"iter"
)

// IterSeq2Concat chains key/value sequences, such as the symbol tables
// of several devices, into one.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
