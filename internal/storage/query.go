package storage

import "github.com/uptrace/bun"

// OrderBy orders results by the given expression, e.g. "brand_name ASC".
func OrderBy(expr string) QueryFn {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order(expr)
	}
}

// WhereEq narrows results to rows whose column equals value.
func WhereEq(column string, value any) QueryFn {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(column+" = ?", value)
	}
}
