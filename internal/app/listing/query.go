// Package listing turns a typed set of filter clauses, a sort key and a result shape into
// SQL and runs it against a source. Notes and comments share the engine and differ only in
// the Schema that maps fields to columns.
package listing

import (
	"strings"

	"github.com/pucknotes/server/internal/app/models"
)

// Field names a filterable attribute independently of its column
type Field string

// Clause is one predicate of a listing query. The set of clause types is closed.
type Clause interface {
	isClause()
}

// Equals matches items whose field equals Value
type Equals struct {
	Field Field
	Value any
}

// Substring matches items where Text occurs, case-insensitively, in any of Fields
type Substring struct {
	Fields []Field
	Text   string
}

// ContainsAny matches items whose array field shares at least one element with Values
type ContainsAny struct {
	Field  Field
	Values []string
}

// ContainsAll matches items whose array field holds every element of Values
type ContainsAll struct {
	Field  Field
	Values []string
}

func (Equals) isClause()      {}
func (Substring) isClause()   {}
func (ContainsAny) isClause() {}
func (ContainsAll) isClause() {}

// Direction of the sort
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps "asc" in any case to Ascending and everything else to Descending
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Ascending)) {
		return Ascending
	}
	return Descending
}

// Sort names a sort key understood by the schema. An unknown key leaves results unsorted.
type Sort struct {
	Key       string
	Direction Direction
}

// Shape selects what the listing returns
type Shape string

const (
	ShapeObject Shape = "object"
	ShapeCount  Shape = "count"
	ShapeID     Shape = "id"
)

// ParseShape falls back to ShapeID for anything that is not "object" or "count"
func ParseShape(s string) Shape {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeObject:
		return ShapeObject
	case ShapeCount:
		return ShapeCount
	default:
		return ShapeID
	}
}

// Query is the complete description of one listing request
type Query struct {
	Clauses []Clause
	Sort    Sort
	Shape   Shape
}

// NewQuery starts an unfiltered, unsorted id listing
func NewQuery() *Query {
	return &Query{Shape: ShapeID, Sort: Sort{Direction: Descending}}
}

// Where appends a clause unconditionally
func (q *Query) Where(c Clause) *Query {
	q.Clauses = append(q.Clauses, c)
	return q
}

// Eq adds an equality clause when v is set
func (q *Query) Eq(f Field, v *int64) *Query {
	if v != nil {
		q.Clauses = append(q.Clauses, Equals{Field: f, Value: *v})
	}
	return q
}

// Search adds a substring clause over fields when text is not blank
func (q *Query) Search(text string, fields ...Field) *Query {
	if strings.TrimSpace(text) != "" && len(fields) > 0 {
		q.Clauses = append(q.Clauses, Substring{Fields: fields, Text: text})
	}
	return q
}

// AnyOf adds an overlap clause when at least one value survives normalization
func (q *Query) AnyOf(f Field, values []string) *Query {
	if values = models.NormalizeTags(values); len(values) > 0 {
		q.Clauses = append(q.Clauses, ContainsAny{Field: f, Values: values})
	}
	return q
}

// AllOf adds a containment clause when at least one value survives normalization
func (q *Query) AllOf(f Field, values []string) *Query {
	if values = models.NormalizeTags(values); len(values) > 0 {
		q.Clauses = append(q.Clauses, ContainsAll{Field: f, Values: values})
	}
	return q
}

// SortBy sets the sort key and parses the direction
func (q *Query) SortBy(key, order string) *Query {
	q.Sort = Sort{Key: strings.TrimSpace(key), Direction: ParseDirection(order)}
	return q
}

// Return sets the result shape
func (q *Query) Return(shape string) *Query {
	q.Shape = ParseShape(shape)
	return q
}
