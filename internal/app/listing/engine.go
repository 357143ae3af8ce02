package listing

import (
	"context"
	"fmt"
)

// Anonymizer is implemented by items that must hide data before leaving the service
type Anonymizer interface {
	Anonymize()
}

// Source runs schema-built statements for one item type
type Source[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	FindIDs(ctx context.Context, q Query) ([]int64, error)
	Count(ctx context.Context, q Query) (int64, error)
}

// Result holds exactly one of Items, IDs or Count depending on Shape
type Result struct {
	Shape Shape
	Items any
	IDs   []int64
	Count int64
}

// Payload is what goes on the wire for the chosen shape
func (r *Result) Payload() any {
	switch r.Shape {
	case ShapeObject:
		return r.Items
	case ShapeCount:
		return r.Count
	default:
		return r.IDs
	}
}

// Engine executes listing queries against a source
type Engine[T any] struct {
	source Source[T]
}

func NewEngine[T any](source Source[T]) *Engine[T] {
	return &Engine[T]{source: source}
}

// Run executes q and shapes the outcome. Object results are anonymized item by item.
func (e *Engine[T]) Run(ctx context.Context, q *Query) (*Result, error) {
	if q == nil {
		q = NewQuery()
	}

	switch q.Shape {
	case ShapeObject:
		items, err := e.source.Find(ctx, *q)
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		for _, item := range items {
			if a, ok := any(item).(Anonymizer); ok {
				a.Anonymize()
			}
		}
		if items == nil {
			items = []T{}
		}
		return &Result{Shape: ShapeObject, Items: items}, nil

	case ShapeCount:
		n, err := e.source.Count(ctx, *q)
		if err != nil {
			return nil, fmt.Errorf("counting listing: %w", err)
		}
		return &Result{Shape: ShapeCount, Count: n}, nil

	default:
		ids, err := e.source.FindIDs(ctx, *q)
		if err != nil {
			return nil, fmt.Errorf("listing ids: %w", err)
		}
		if ids == nil {
			ids = []int64{}
		}
		return &Result{Shape: ShapeID, IDs: ids}, nil
	}
}
