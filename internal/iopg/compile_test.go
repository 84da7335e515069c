package iopg

import (
	"testing"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestCompileWhere(t *testing.T) {
	tests := []struct {
		msg    string
		filter pipeline.Filter
		sql    string
		args   []any
	}{
		{"nil", nil, "TRUE", nil},
		{"empty and", pipeline.And{}, "TRUE", nil},
		{"empty or", pipeline.Or{}, "FALSE", nil},
		{
			"contains",
			pipeline.Contains{Field: occurrence.Locality, Value: "Kochi"},
			"strpos(lower(locality), lower($1)) > 0",
			[]any{"Kochi"},
		},
		{
			"equals",
			pipeline.Equals{Field: occurrence.ScientificName, Value: "Gadus morhua"},
			"scientific_name = $1",
			[]any{"Gadus morhua"},
		},
		{
			"present",
			pipeline.Present{Field: occurrence.Habitat},
			`btrim(habitat, E' \t\r\n') <> ''`,
			nil,
		},
		{
			"and of or",
			pipeline.And{
				pipeline.Equals{Field: occurrence.Sex, Value: "male"},
				pipeline.Or{
					pipeline.Contains{Field: occurrence.Habitat, Value: "reef"},
					pipeline.Numeric{Field: occurrence.MinimumDepth},
				},
			},
			`(sex = $1 AND (strpos(lower(habitat), lower($2)) > 0 OR ` +
				`btrim(minimum_depth_in_meters, E' \t\r\n') ~ $3))`,
			[]any{"male", "reef", occurrence.NumberPattern},
		},
	}
	for _, v := range tests {
		b := newBuilder("occurrences")
		assert.Equal(t, v.sql, b.where(v.filter), v.msg)
		assert.Equal(t, v.args, b.args, v.msg)
	}
}

func TestCompileCount(t *testing.T) {
	q := compileCount("occurrences", nil)
	assert.Equal(t, `SELECT COUNT(*) FROM "occurrences" WHERE TRUE`, q.sql)

	q = compileCountDistinct("occurrences", occurrence.Locality,
		pipeline.Equals{Field: occurrence.ScientificName, Value: "Gadus morhua"})
	assert.Equal(t,
		`SELECT COUNT(DISTINCT locality) FROM "occurrences" `+
			`WHERE scientific_name = $1 AND btrim(locality, E' \t\r\n') <> ''`,
		q.sql,
	)
	assert.Equal(t, []any{"Gadus morhua"}, q.args)
}

func TestCompileFind(t *testing.T) {
	p := pipeline.Must(
		pipeline.Match{Filter: pipeline.Present{Field: occurrence.EventDate}},
		pipeline.Sort{Keys: []pipeline.SortKey{
			pipeline.ByField(occurrence.EventDate, true),
		}},
		pipeline.Skip{N: 5},
		pipeline.Limit{N: 10},
	)
	q := compileFind("occurrences", p)
	assert.Contains(t, q.sql, "SELECT id, scientific_name, habitat,")
	assert.Contains(t, q.sql, `FROM "occurrences" WHERE`)
	assert.Contains(t, q.sql, `ORDER BY event_date COLLATE "C" DESC, id OFFSET 5 LIMIT 10`)

	q = compileFind("occurrences", pipeline.Must())
	assert.Contains(t, q.sql, "WHERE TRUE ORDER BY id")
	assert.NotContains(t, q.sql, "LIMIT")
}

func TestCompileAggregate(t *testing.T) {
	assert := assert.New(t)
	p := pipeline.Must(
		pipeline.GroupByField(occurrence.ScientificName,
			pipeline.CountAs("count"),
			pipeline.Acc("minDepth", pipeline.Min, occurrence.MinimumDepth),
			pipeline.Acc("first", pipeline.MinText, occurrence.EventDate),
			pipeline.Acc("habitats", pipeline.AddToSet, occurrence.Habitat),
			pipeline.Acc("individuals", pipeline.SumCounts, occurrence.IndividualCount),
		),
		pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("individuals", true)}},
		pipeline.Limit{N: 3},
	)
	q := compileAggregate("occurrences", p)
	assert.Contains(q.sql, "SELECT scientific_name AS _key, MIN(id) AS _first, "+
		"COUNT(*)::double precision AS a0")
	assert.Contains(q.sql, `MIN((CASE WHEN btrim(event_date, E' \t\r\n') <> '' `+
		`THEN event_date END) COLLATE "C") AS a2`)
	assert.Contains(q.sql, "array_agg(DISTINCT")
	assert.Contains(q.sql, " GROUP BY scientific_name ORDER BY a4 DESC, _first LIMIT 3")
	assert.Equal([]any{occurrence.NumberPattern, occurrence.CountPattern}, q.args)

	p = pipeline.Must(pipeline.GroupAll(pipeline.CountAs("n")))
	q = compileAggregate("occurrences", p)
	assert.Contains(q.sql, "SELECT '' AS _key")
	assert.Contains(q.sql, "HAVING COUNT(*) > 0 ORDER BY _first")
	assert.NotContains(q.sql, "GROUP BY")
}
