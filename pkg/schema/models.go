// Package schema provides the storage model of occurrence records for
// SQL stores.
package schema

import (
	"strconv"

	"github.com/gnames/gnmarine/pkg/occurrence"
)

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL(table string) string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL(table string) []string
}

// Record is one occurrence as stored in a SQL table. Values are kept as
// text, ID defines insertion order.
type Record struct {
	// ID is an auto-incremented primary key.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"column:id;primaryKey;autoIncrement"`

	ScientificName string `db:"scientific_name" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:scientific_name;type:text;not null;default:''"`
	Habitat        string `db:"habitat" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:habitat;type:text;not null;default:''"`
	Locality       string `db:"locality" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:locality;type:text;not null;default:''"`
	WaterBody      string `db:"water_body" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:water_body;type:text;not null;default:''"`
	Country        string `db:"country" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:country;type:text;not null;default:''"`

	// MinimumDepth in meters, as delivered by the dataset.
	MinimumDepth string `db:"minimum_depth_in_meters" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:minimum_depth_in_meters;type:text;not null;default:''"`

	// MaximumDepth in meters, as delivered by the dataset.
	MaximumDepth string `db:"maximum_depth_in_meters" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:maximum_depth_in_meters;type:text;not null;default:''"`

	DecimalLatitude  string `db:"decimal_latitude" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:decimal_latitude;type:text;not null;default:''"`
	DecimalLongitude string `db:"decimal_longitude" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:decimal_longitude;type:text;not null;default:''"`

	// EventDate is expected in ISO 8601 form.
	EventDate string `db:"event_date" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:event_date;type:text;not null;default:''"`

	IndividualCount  string `db:"individual_count" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:individual_count;type:text;not null;default:''"`
	IdentifiedBy     string `db:"identified_by" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:identified_by;type:text;not null;default:''"`
	LifeStage        string `db:"life_stage" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:life_stage;type:text;not null;default:''"`
	Sex              string `db:"sex" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:sex;type:text;not null;default:''"`
	SamplingProtocol string `db:"sampling_protocol" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"column:sampling_protocol;type:text;not null;default:''"`
}

// FromOccurrence converts an occurrence to a record. ID is set only if
// the occurrence ID is numeric.
func FromOccurrence(o occurrence.Occurrence) Record {
	id, _ := strconv.ParseInt(o.ID, 10, 64)
	return Record{
		ID:               id,
		ScientificName:   o.ScientificName,
		Habitat:          o.Habitat,
		Locality:         o.Locality,
		WaterBody:        o.WaterBody,
		Country:          o.Country,
		MinimumDepth:     o.MinimumDepth,
		MaximumDepth:     o.MaximumDepth,
		DecimalLatitude:  o.DecimalLatitude,
		DecimalLongitude: o.DecimalLongitude,
		EventDate:        o.EventDate,
		IndividualCount:  o.IndividualCount,
		IdentifiedBy:     o.IdentifiedBy,
		LifeStage:        o.LifeStage,
		Sex:              o.Sex,
		SamplingProtocol: o.SamplingProtocol,
	}
}

// Occurrence converts a record back to an occurrence.
func (r Record) Occurrence() occurrence.Occurrence {
	return occurrence.Occurrence{
		ID:               strconv.FormatInt(r.ID, 10),
		ScientificName:   r.ScientificName,
		Habitat:          r.Habitat,
		Locality:         r.Locality,
		WaterBody:        r.WaterBody,
		Country:          r.Country,
		MinimumDepth:     r.MinimumDepth,
		MaximumDepth:     r.MaximumDepth,
		DecimalLatitude:  r.DecimalLatitude,
		DecimalLongitude: r.DecimalLongitude,
		EventDate:        r.EventDate,
		IndividualCount:  r.IndividualCount,
		IdentifiedBy:     r.IdentifiedBy,
		LifeStage:        r.LifeStage,
		Sex:              r.Sex,
		SamplingProtocol: r.SamplingProtocol,
	}
}

// Columns returns SQL column names in the order of occurrence.Fields.
func Columns() []string {
	res := make([]string, len(occurrence.Fields))
	for i, f := range occurrence.Fields {
		res[i] = f.Column()
	}
	return res
}

// IndexedFields are the fields that get an index in every store.
var IndexedFields = []occurrence.Field{
	occurrence.ScientificName,
	occurrence.Habitat,
	occurrence.Locality,
	occurrence.EventDate,
}
