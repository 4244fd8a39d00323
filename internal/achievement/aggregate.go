// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"fmt"
	"strings"

	"github.com/taibuivan/mediatrack/internal/media"
)

// # Aggregates

// Aggregate is a per-user subquery returning one "(userid, value)" row per
// qualifying user, together with its positional arguments.
type Aggregate struct {
	SQL  string
	Args []any
}

// Filter restricts which list entries contribute to an aggregate.
type Filter struct {
	// Statuses keeps entries in any of these statuses. Empty keeps all.
	Statuses []media.Status
	// Rated keeps only entries the user scored.
	Rated bool
}

// Dimension locates a column calculators group or filter by. The column may
// live on the list entry itself, on the media item, or on an association table.
type Dimension struct {
	Handle media.Handle
	Column string
}

// Quantity locates a numeric column. Summed adds up every row of Handle per
// media item first (episodes across seasons). Divisor rescales the value
// (minutes into hours); zero means 1.
type Quantity struct {
	Handle  media.Handle
	Column  string
	Summed  bool
	Divisor float64
}

// Comparison is the side of a cutoff a bounded count keeps.
type Comparison string

const (
	AtMost  Comparison = "<="
	AtLeast Comparison = ">="
)

// # Builder

// Builder assembles aggregate SQL with positional arguments. The family
// methods (CountEntries, DistinctCount, BoundedCount, MaxGroupCount,
// ValueCount, SumQuantity, Union, DistinctUnion) return SQL fragments that share the
// builder's argument list, so they can be composed.
//
// A Builder is single-use and not safe for concurrent use.
type Builder struct {
	args    []any
	userIDs []string
}

// NewBuilder returns a builder restricting every aggregate to userIDs.
// A nil slice means every user.
func NewBuilder(userIDs []string) *Builder {
	return &Builder{userIDs: userIDs}
}

// Aggregate finalises sql with the arguments bound so far.
func (builder *Builder) Aggregate(sql string) Aggregate {
	args := make([]any, len(builder.args))
	copy(args, builder.args)
	return Aggregate{SQL: strings.TrimSpace(sql), Args: args}
}

// bind appends a positional argument and returns its placeholder.
func (builder *Builder) bind(value any) string {
	builder.args = append(builder.args, value)
	return fmt.Sprintf("$%d", len(builder.args))
}

// conditions renders the WHERE clause shared by every family.
func (builder *Builder) conditions(list media.Handle, filter Filter, extra ...string) string {
	clauses := make([]string, 0, 3+len(extra))

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		clauses = append(clauses, fmt.Sprintf("l.%s::text = ANY(%s::text[])", list.Status, builder.bind(statuses)))
	}

	if filter.Rated {
		clauses = append(clauses, fmt.Sprintf("l.%s IS NOT NULL", list.Score))
	}

	if builder.userIDs != nil {
		clauses = append(clauses, fmt.Sprintf("l.%s = ANY(%s::uuid[])", list.User, builder.bind(builder.userIDs)))
	}

	clauses = append(clauses, extra...)
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(clauses, " AND ")
}

// join renders the JOIN clause bringing handle into scope under alias.
func join(list media.Handle, handle media.Handle, alias string) string {
	switch {
	case handle.Table == list.Table:
		return ""
	case handle.Role == media.RoleMedia:
		return fmt.Sprintf("JOIN %s %s ON %s.%s = l.%s", handle.Table, alias, alias, handle.ID, list.Media)
	case handle.User != "":
		return fmt.Sprintf("JOIN %s %s ON %s.%s = l.%s AND %s.%s = l.%s",
			handle.Table, alias, alias, handle.Media, list.Media, alias, handle.User, list.User)
	default:
		return fmt.Sprintf("JOIN %s %s ON %s.%s = l.%s", handle.Table, alias, alias, handle.Media, list.Media)
	}
}

// resolve returns the JOIN and column expression for the dimension.
func (dimension Dimension) resolve(list media.Handle) (string, string) {
	if dimension.Handle.Table == list.Table || dimension.Handle.IsZero() {
		return "", "l." + dimension.Column
	}
	return join(list, dimension.Handle, "d"), "d." + dimension.Column
}

// resolve returns the JOIN and numeric expression for the quantity.
func (quantity Quantity) resolve(list media.Handle) (string, string) {
	var joinClause, expression string

	switch {
	case quantity.Handle.Table == list.Table || quantity.Handle.IsZero():
		expression = "l." + quantity.Column
	case quantity.Summed:
		joinClause = fmt.Sprintf(
			"JOIN (SELECT s.%s AS mediaid, SUM(s.%s) AS total FROM %s s GROUP BY s.%s) q ON q.mediaid = l.%s",
			quantity.Handle.Media, quantity.Column, quantity.Handle.Table, quantity.Handle.Media, list.Media,
		)
		expression = "q.total"
	default:
		joinClause = join(list, quantity.Handle, "q")
		expression = "q." + quantity.Column
	}

	expression = expression + "::numeric"
	if quantity.Divisor > 0 && quantity.Divisor != 1 {
		expression = fmt.Sprintf("(%s / %g)", expression, quantity.Divisor)
	}
	return joinClause, expression
}

// # Families

// CountEntries counts list entries per user.
func (builder *Builder) CountEntries(list media.Handle, filter Filter) string {
	return fmt.Sprintf(`SELECT l.%s AS userid, COUNT(*)::numeric AS value
		FROM %s l
		%s
		GROUP BY l.%s`,
		list.User, list.Table, builder.conditions(list, filter), list.User)
}

// DistinctCount counts distinct non-null values of a dimension per user.
func (builder *Builder) DistinctCount(list media.Handle, dimension Dimension, filter Filter) string {
	joinClause, column := dimension.resolve(list)
	return fmt.Sprintf(`SELECT l.%s AS userid, COUNT(DISTINCT %s)::numeric AS value
		FROM %s l
		%s
		%s
		GROUP BY l.%s`,
		list.User, column, list.Table, joinClause,
		builder.conditions(list, filter, column+" IS NOT NULL"), list.User)
}

// DimensionValues lists every non-null value of a dimension per user, one
// row per entry. It is a building block for DistinctUnion and is not an
// aggregate by itself.
func (builder *Builder) DimensionValues(list media.Handle, dimension Dimension, filter Filter) string {
	joinClause, column := dimension.resolve(list)
	return fmt.Sprintf(`SELECT l.%s AS userid, %s::text AS value
		FROM %s l
		%s
		%s`,
		list.User, column, list.Table, joinClause,
		builder.conditions(list, filter, column+" IS NOT NULL"))
}

// BoundedCount counts entries whose quantity falls on one side of cutoff.
// Entries with an unknown quantity never qualify.
func (builder *Builder) BoundedCount(list media.Handle, quantity Quantity, comparison Comparison, cutoff float64, filter Filter) string {
	joinClause, expression := quantity.resolve(list)
	where := builder.conditions(list, filter)
	bound := fmt.Sprintf("%s %s %s::numeric", expression, comparison, builder.bind(cutoff))
	if where == "" {
		where = "WHERE " + bound
	} else {
		where += " AND " + bound
	}
	return fmt.Sprintf(`SELECT l.%s AS userid, COUNT(*)::numeric AS value
		FROM %s l
		%s
		%s
		GROUP BY l.%s`,
		list.User, list.Table, joinClause, where, list.User)
}

// MaxGroupCount counts entries per (user, dimension value) and keeps each
// user's largest group ("N movies by the same director").
func (builder *Builder) MaxGroupCount(list media.Handle, dimension Dimension, filter Filter) string {
	joinClause, column := dimension.resolve(list)
	return fmt.Sprintf(`SELECT g.userid, MAX(g.total)::numeric AS value
		FROM (
			SELECT l.%s AS userid, %s AS dimension, COUNT(DISTINCT l.%s) AS total
			FROM %s l
			%s
			%s
			GROUP BY l.%s, %s
		) g
		GROUP BY g.userid`,
		list.User, column, list.ID, list.Table, joinClause,
		builder.conditions(list, filter, column+" IS NOT NULL"), list.User, column)
}

// ValueCount counts entries whose dimension equals one literal value.
func (builder *Builder) ValueCount(list media.Handle, dimension Dimension, value string, filter Filter) string {
	joinClause, column := dimension.resolve(list)
	match := fmt.Sprintf("%s = %s", column, builder.bind(value))
	return fmt.Sprintf(`SELECT l.%s AS userid, COUNT(DISTINCT l.%s)::numeric AS value
		FROM %s l
		%s
		%s
		GROUP BY l.%s`,
		list.User, list.ID, list.Table, joinClause,
		builder.conditions(list, filter, match), list.User)
}

// SumQuantity adds up a quantity per user. Unknown quantities count as zero.
func (builder *Builder) SumQuantity(list media.Handle, quantity Quantity, filter Filter) string {
	joinClause, expression := quantity.resolve(list)
	if joinClause != "" {
		joinClause = "LEFT " + joinClause
	}
	return fmt.Sprintf(`SELECT l.%s AS userid, COALESCE(SUM(%s), 0)::numeric AS value
		FROM %s l
		%s
		%s
		GROUP BY l.%s`,
		list.User, expression, list.Table, joinClause,
		builder.conditions(list, filter), list.User)
}

// Union adds up several per-user aggregates, typically one per domain.
func (builder *Builder) Union(parts ...string) string {
	switch len(parts) {
	case 0:
		return "SELECT NULL::uuid AS userid, 0::numeric AS value WHERE false"
	case 1:
		return parts[0]
	}
	return fmt.Sprintf(`SELECT u.userid, SUM(u.value)::numeric AS value
		FROM (
			%s
		) u
		GROUP BY u.userid`,
		strings.Join(parts, "\n\t\t\tUNION ALL\n\t\t\t"))
}

// DistinctUnion counts distinct values per user across DimensionValues
// parts, so a value present in several domains counts once.
func (builder *Builder) DistinctUnion(parts ...string) string {
	if len(parts) == 0 {
		return builder.Union()
	}
	return fmt.Sprintf(`SELECT u.userid, COUNT(DISTINCT u.value)::numeric AS value
		FROM (
			%s
		) u
		GROUP BY u.userid`,
		strings.Join(parts, "\n\t\t\tUNION ALL\n\t\t\t"))
}
