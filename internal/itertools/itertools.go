package itertools

import "iter"

func Cat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}

func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

func Map[Vin, Vout any](seq iter.Seq[Vin], transform func(Vin) Vout) iter.Seq[Vout] {
	return func(yield func(Vout) bool) {
		for v := range seq {
			if !yield(transform(v)) {
				return
			}
		}
	}
}
