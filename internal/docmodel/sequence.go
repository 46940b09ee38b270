package docmodel

import "github.com/sirupsen/logrus"

// Iterator is a pull-based, single-step cursor over a Sequence. It is
// the Go re-expression of the source's single-pass iterables as a
// pull-based iterator abstraction.
type Iterator interface {
	// Next returns the next element and true, or a zero Value and false
	// once exhausted.
	Next() (Value, bool)
}

// Sequence is the capability interface for LIST/SEXP/BAG values: these
// containers iterate their child values.
type Sequence interface {
	Value
	ContainerType() Type
	Iterate() Iterator
}

type sliceIterator struct {
	items []Value
	pos   int
}

func (it *sliceIterator) Next() (Value, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	v := it.items[it.pos]
	it.pos++
	return v, true
}

// EagerSequence is a materialized, re-iterable LIST/SEXP/BAG.
type EagerSequence struct {
	Container Type
	Items     []Value
}

func NewList(items []Value) *EagerSequence { return &EagerSequence{Container: ListType, Items: items} }
func NewSexp(items []Value) *EagerSequence { return &EagerSequence{Container: SexpType, Items: items} }
func NewBag(items []Value) *EagerSequence  { return &EagerSequence{Container: BagType, Items: items} }

func (s *EagerSequence) Type() Type          { return s.Container }
func (s *EagerSequence) ContainerType() Type { return s.Container }
func (s *EagerSequence) Iterate() Iterator   { return &sliceIterator{items: s.Items} }

// SequenceExprValue is the lazy, single-pass sequence: it holds a
// target container type and a pull-based producer function.
// Materialization to an EagerSequence happens only when asked.
//
// Decision: a
// SequenceExprValue consumed once returns an immediately-exhausted
// Iterator on every later call, and logs a Warn rather than panicking —
// re-traversal is a caller bug, not a data error, so it must not surface
// as a user-facing EVALUATOR_* exception.
type SequenceExprValue struct {
	Container Type
	produce   func() (Value, bool)
	consumed  bool
}

// NewSequenceExprValue builds a lazy sequence around produce, which must
// return (value, true) per element and (zero, false) once exhausted.
func NewSequenceExprValue(container Type, produce func() (Value, bool)) *SequenceExprValue {
	return &SequenceExprValue{Container: container, produce: produce}
}

func (s *SequenceExprValue) Type() Type          { return s.Container }
func (s *SequenceExprValue) ContainerType() Type { return s.Container }

func (s *SequenceExprValue) Iterate() Iterator {
	if s.consumed {
		logrus.Warn("docmodel: re-iterating an already-consumed SequenceExprValue; yielding empty")
		return &sliceIterator{}
	}
	s.consumed = true
	return &produceIterator{produce: s.produce}
}

type produceIterator struct {
	produce func() (Value, bool)
	done    bool
}

func (it *produceIterator) Next() (Value, bool) {
	if it.done {
		return nil, false
	}
	v, ok := it.produce()
	if !ok {
		it.done = true
		return nil, false
	}
	return v, true
}

// Materialize drains s into an EagerSequence of the same container type.
// Calling it twice is the same re-iteration case handled by Iterate.
func (s *SequenceExprValue) Materialize() *EagerSequence {
	it := s.Iterate()
	var items []Value
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		items = append(items, v)
	}
	return &EagerSequence{Container: s.Container, Items: items}
}

// Drain collects every element of any Sequence (eager or lazy) into a
// slice, the common case callers in eval/equality need.
func Drain(seq Sequence) []Value {
	it := seq.Iterate()
	var out []Value
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
