package iopg

import (
	"fmt"
	"strings"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnmarine/pkg/schema"
	"github.com/jackc/pgx/v5"
)

// query is a compiled SQL statement with its arguments.
type query struct {
	sql  string
	args []any
}

type builder struct {
	table string
	args  []any
}

func newBuilder(table string) *builder {
	return &builder{table: pgx.Identifier{table}.Sanitize()}
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func trimmed(f occurrence.Field) string {
	return fmt.Sprintf(`btrim(%s, E' \t\r\n')`, f.Column())
}

// number is a nullable double precision value of a text column.
func (b *builder) number(f occurrence.Field) string {
	t := trimmed(f)
	return fmt.Sprintf(
		"(CASE WHEN %s ~ %s THEN %s::double precision END)",
		t, b.arg(occurrence.NumberPattern), t,
	)
}

// count is a nullable individual count of a text column.
func (b *builder) count(f occurrence.Field) string {
	t := trimmed(f)
	return fmt.Sprintf(
		"(CASE WHEN %s ~ %s THEN ltrim(%s, '+')::numeric END)",
		t, b.arg(occurrence.CountPattern), t,
	)
}

// text is a column value or NULL when the value is blank.
func text(f occurrence.Field) string {
	return fmt.Sprintf("(CASE WHEN %s <> '' THEN %s END)", trimmed(f), f.Column())
}

func (b *builder) where(f pipeline.Filter) string {
	switch v := f.(type) {
	case nil:
		return "TRUE"
	case pipeline.Contains:
		return fmt.Sprintf("strpos(lower(%s), lower(%s)) > 0",
			v.Field.Column(), b.arg(v.Value))
	case pipeline.Equals:
		return fmt.Sprintf("%s = %s", v.Field.Column(), b.arg(v.Value))
	case pipeline.Present:
		return fmt.Sprintf("%s <> ''", trimmed(v.Field))
	case pipeline.Numeric:
		return fmt.Sprintf("%s ~ %s",
			trimmed(v.Field), b.arg(occurrence.NumberPattern))
	case pipeline.And:
		return b.join(v, " AND ", "TRUE")
	case pipeline.Or:
		return b.join(v, " OR ", "FALSE")
	}
	return "FALSE"
}

func (b *builder) join(fs []pipeline.Filter, sep, empty string) string {
	if len(fs) == 0 {
		return empty
	}
	res := make([]string, len(fs))
	for i := range fs {
		res[i] = b.where(fs[i])
	}
	return "(" + strings.Join(res, sep) + ")"
}

func (b *builder) accumulator(acc pipeline.Accumulator) string {
	switch acc.Op {
	case pipeline.Count:
		return "COUNT(*)::double precision"
	case pipeline.Sum:
		return fmt.Sprintf("COALESCE(SUM(%s), 0)::double precision",
			b.number(acc.Field))
	case pipeline.SumCounts:
		return fmt.Sprintf("COALESCE(SUM(%s), 0)::double precision",
			b.count(acc.Field))
	case pipeline.Min:
		return fmt.Sprintf("MIN(%s)", b.number(acc.Field))
	case pipeline.Max:
		return fmt.Sprintf("MAX(%s)", b.number(acc.Field))
	case pipeline.Avg:
		return fmt.Sprintf("AVG(%s)", b.number(acc.Field))
	case pipeline.MinText:
		return fmt.Sprintf(`MIN(%s COLLATE "C")`, text(acc.Field))
	case pipeline.MaxText:
		return fmt.Sprintf(`MAX(%s COLLATE "C")`, text(acc.Field))
	case pipeline.AddToSet:
		return fmt.Sprintf(
			"COALESCE(array_remove(array_agg(DISTINCT %s), NULL), '{}'::text[])",
			text(acc.Field),
		)
	}
	return "NULL"
}

func window(sb *strings.Builder, p pipeline.Pipeline) {
	if p.Skip > 0 {
		fmt.Fprintf(sb, " OFFSET %d", p.Skip)
	}
	if p.Limit > 0 {
		fmt.Fprintf(sb, " LIMIT %d", p.Limit)
	}
}

func compileCount(table string, f pipeline.Filter) query {
	b := newBuilder(table)
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", b.table, b.where(f))
	return query{sql: sql, args: b.args}
}

func compileCountDistinct(
	table string,
	field occurrence.Field,
	f pipeline.Filter,
) query {
	b := newBuilder(table)
	sql := fmt.Sprintf(
		"SELECT COUNT(DISTINCT %s) FROM %s WHERE %s AND %s",
		field.Column(), b.table, b.where(f),
		b.where(pipeline.Present{Field: field}),
	)
	return query{sql: sql, args: b.args}
}

func compileFind(table string, p pipeline.Pipeline) query {
	b := newBuilder(table)
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s",
		strings.Join(schema.Columns(), ", "), b.table, b.where(p.Filter))

	order := make([]string, 0, len(p.Sort)+1)
	for _, v := range p.Sort {
		s := fmt.Sprintf(`%s COLLATE "C"`, v.Field.Column())
		if v.Desc {
			s += " DESC"
		}
		order = append(order, s)
	}
	order = append(order, "id")
	fmt.Fprintf(&sb, " ORDER BY %s", strings.Join(order, ", "))
	window(&sb, p)

	return query{sql: sb.String(), args: b.args}
}

func compileAggregate(table string, p pipeline.Pipeline) query {
	b := newBuilder(table)
	g := p.Group

	key := "''"
	if !g.Whole {
		key = g.Key.Column()
	}
	cols := []string{key + " AS _key", "MIN(id) AS _first"}
	aliases := make(map[string]string, len(g.Accumulators))
	for i, acc := range g.Accumulators {
		alias := fmt.Sprintf("a%d", i)
		aliases[acc.Name] = alias
		cols = append(cols, b.accumulator(acc)+" AS "+alias)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s",
		strings.Join(cols, ", "), b.table, b.where(p.Filter))
	if g.Whole {
		sb.WriteString(" HAVING COUNT(*) > 0")
	} else {
		fmt.Fprintf(&sb, " GROUP BY %s", key)
	}

	order := make([]string, 0, len(p.Sort)+1)
	for _, v := range p.Sort {
		s := aliases[v.Acc]
		if v.Desc {
			s += " DESC"
		}
		order = append(order, s)
	}
	order = append(order, "_first")
	fmt.Fprintf(&sb, " ORDER BY %s", strings.Join(order, ", "))
	window(&sb, p)

	return query{sql: sb.String(), args: b.args}
}
