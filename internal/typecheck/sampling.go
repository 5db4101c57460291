package typecheck

import (
	"iter"
	"reflect"
	"sort"
)

// Sample is one element drawn from a container during a check. For
// mapping containers Key is set; for positional containers Index is set.
type Sample struct {
	Index int
	Key   any
	Value any
}

// CollectionCheckStrategy decides which container elements are actually
// checked. Given the full lazy element sequence it produces a possibly
// sampled sequence; it must return a fresh sequence per invocation and
// may legitimately yield a strict subset.
type CollectionCheckStrategy interface {
	IterateSamples(seq iter.Seq[Sample]) iter.Seq[Sample]
}

// AllElements checks every element of every container. This is the
// default strategy.
type AllElements struct{}

func (AllElements) IterateSamples(seq iter.Seq[Sample]) iter.Seq[Sample] { return seq }

// FirstN checks at most the first N elements of each container, trading
// completeness for performance on large containers.
type FirstN struct {
	N int
}

func (s FirstN) IterateSamples(seq iter.Seq[Sample]) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		n := 0
		for sample := range seq {
			if n >= s.N || !yield(sample) {
				return
			}
			n++
		}
	}
}

// iterateElements produces the positional element sequence of a sequence
// shaped container: slice, array, string (runes) or a SequenceValue.
func iterateElements(value any) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		switch sv := value.(type) {
		case SequenceValue:
			for i := 0; i < sv.Len(); i++ {
				if !yield(Sample{Index: i, Value: sv.At(i)}) {
					return
				}
			}
			return
		case string:
			for i, r := range []rune(sv) {
				if !yield(Sample{Index: i, Value: r}) {
					return
				}
			}
			return
		}

		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				if !yield(Sample{Index: i, Value: rv.Index(i).Interface()}) {
					return
				}
			}
		case reflect.String:
			for i, r := range []rune(rv.String()) {
				if !yield(Sample{Index: i, Value: r}) {
					return
				}
			}
		}
	}
}

// iteratePairs produces the key/value sequence of a mapping shaped
// container. Go map iteration order is randomized, so keys are sorted by
// their rendering to keep error paths deterministic.
func iteratePairs(value any) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if mv, ok := value.(Mapping); ok {
			for _, k := range mv.Keys() {
				v, _ := mv.Get(k)
				if !yield(Sample{Key: k, Value: v}) {
					return
				}
			}
			return
		}

		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Map {
			return
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return reprValue(keys[i].Interface()) < reprValue(keys[j].Interface())
		})
		for _, k := range keys {
			if !yield(Sample{Key: k.Interface(), Value: rv.MapIndex(k).Interface()}) {
				return
			}
		}
	}
}

// iterateMembers produces the member sequence of a set shaped container:
// a SetValue or a map with an empty-struct element type. Members are
// sorted by rendering for deterministic error paths.
func iterateMembers(value any) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if sv, ok := value.(SetValue); ok {
			for i, item := range sv.Items() {
				if !yield(Sample{Index: i, Value: item}) {
					return
				}
			}
			return
		}

		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Map {
			return
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return reprValue(keys[i].Interface()) < reprValue(keys[j].Interface())
		})
		for i, k := range keys {
			if !yield(Sample{Index: i, Value: k.Interface()}) {
				return
			}
		}
	}
}
