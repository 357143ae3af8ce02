package listing

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// SortColumn is the ORDER BY expression for a sort key, plus the join it needs if any
type SortColumn struct {
	Expr string
	Join string
}

// Schema binds fields and sort keys to the columns of one table
type Schema struct {
	From     string
	IDColumn string
	Columns  []string
	Fields   map[Field]string
	SortKeys map[string]SortColumn
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s Schema) column(f Field) (string, error) {
	col, ok := s.Fields[f]
	if !ok {
		return "", fmt.Errorf("listing: field %q is not filterable on %s", f, s.From)
	}
	return col, nil
}

// Predicate translates a clause into SQL. A nil predicate means the clause is a no-op.
func (s Schema) Predicate(c Clause) (squirrel.Sqlizer, error) {
	switch c := c.(type) {
	case Equals:
		col, err := s.column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Eq{col: c.Value}, nil

	case Substring:
		if strings.TrimSpace(c.Text) == "" {
			return nil, nil
		}
		pattern := "%" + likeEscaper.Replace(c.Text) + "%"
		or := make(squirrel.Or, 0, len(c.Fields))
		for _, f := range c.Fields {
			col, err := s.column(f)
			if err != nil {
				return nil, err
			}
			or = append(or, squirrel.ILike{col: pattern})
		}
		return or, nil

	case ContainsAny:
		if len(c.Values) == 0 {
			return nil, nil
		}
		col, err := s.column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Expr(col+" && ?", c.Values), nil

	case ContainsAll:
		if len(c.Values) == 0 {
			return nil, nil
		}
		col, err := s.column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Expr(col+" @> ?", c.Values), nil

	default:
		return nil, fmt.Errorf("listing: unsupported clause %T", c)
	}
}

func (s Schema) filtered(b squirrel.SelectBuilder, q Query) (squirrel.SelectBuilder, error) {
	for _, c := range q.Clauses {
		pred, err := s.Predicate(c)
		if err != nil {
			return b, err
		}
		if pred != nil {
			b = b.Where(pred)
		}
	}
	return b, nil
}

func (s Schema) ordered(b squirrel.SelectBuilder, q Query) squirrel.SelectBuilder {
	sc, ok := s.SortKeys[q.Sort.Key]
	if !ok {
		return b
	}
	if sc.Join != "" {
		b = b.LeftJoin(sc.Join)
	}
	dir := "DESC"
	if q.Sort.Direction == Ascending {
		dir = "ASC"
	}
	return b.OrderBy(sc.Expr+" "+dir, s.IDColumn+" ASC")
}

func (s Schema) base(columns ...string) squirrel.SelectBuilder {
	return squirrel.Select(columns...).From(s.From).PlaceholderFormat(squirrel.Dollar)
}

// SelectObjects builds the full-row listing statement
func (s Schema) SelectObjects(q Query) (squirrel.SelectBuilder, error) {
	b, err := s.filtered(s.base(s.Columns...), q)
	if err != nil {
		return b, err
	}
	return s.ordered(b, q), nil
}

// SelectIDs builds the id-only listing statement
func (s Schema) SelectIDs(q Query) (squirrel.SelectBuilder, error) {
	b, err := s.filtered(s.base(s.IDColumn), q)
	if err != nil {
		return b, err
	}
	return s.ordered(b, q), nil
}

// SelectCount builds the count statement. Sorting is irrelevant and skipped.
func (s Schema) SelectCount(q Query) (squirrel.SelectBuilder, error) {
	return s.filtered(s.base("COUNT(*)"), q)
}
