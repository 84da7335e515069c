package occurrence

// Field names one attribute of an Occurrence.
type Field int

const (
	ID Field = iota
	ScientificName
	Habitat
	Locality
	WaterBody
	Country
	MinimumDepth
	MaximumDepth
	DecimalLatitude
	DecimalLongitude
	EventDate
	IndividualCount
	IdentifiedBy
	LifeStage
	Sex
	SamplingProtocol
)

// Fields lists all attributes in storage order.
var Fields = []Field{
	ID, ScientificName, Habitat, Locality, WaterBody, Country,
	MinimumDepth, MaximumDepth, DecimalLatitude, DecimalLongitude,
	EventDate, IndividualCount, IdentifiedBy, LifeStage, Sex,
	SamplingProtocol,
}

var fieldKeys = map[Field]string{
	ID:               "id",
	ScientificName:   "scientificName",
	Habitat:          "habitat",
	Locality:         "locality",
	WaterBody:        "waterBody",
	Country:          "country",
	MinimumDepth:     "minimumDepthInMeters",
	MaximumDepth:     "maximumDepthInMeters",
	DecimalLatitude:  "decimalLatitude",
	DecimalLongitude: "decimalLongitude",
	EventDate:        "eventDate",
	IndividualCount:  "individualCount",
	IdentifiedBy:     "identifiedBy",
	LifeStage:        "lifeStage",
	Sex:              "sex",
	SamplingProtocol: "samplingProtocol",
}

var fieldColumns = map[Field]string{
	ID:               "id",
	ScientificName:   "scientific_name",
	Habitat:          "habitat",
	Locality:         "locality",
	WaterBody:        "water_body",
	Country:          "country",
	MinimumDepth:     "minimum_depth_in_meters",
	MaximumDepth:     "maximum_depth_in_meters",
	DecimalLatitude:  "decimal_latitude",
	DecimalLongitude: "decimal_longitude",
	EventDate:        "event_date",
	IndividualCount:  "individual_count",
	IdentifiedBy:     "identified_by",
	LifeStage:        "life_stage",
	Sex:              "sex",
	SamplingProtocol: "sampling_protocol",
}

// Valid reports if the field is one of the known attributes.
func (f Field) Valid() bool {
	_, ok := fieldKeys[f]
	return ok
}

// Key returns the Darwin Core term used as a document key.
func (f Field) Key() string {
	return fieldKeys[f]
}

// Column returns the SQL column name.
func (f Field) Column() string {
	return fieldColumns[f]
}

func (f Field) String() string {
	if s, ok := fieldKeys[f]; ok {
		return s
	}
	return "unknown"
}

// Value returns the text value of the field.
func (f Field) Value(o *Occurrence) string {
	switch f {
	case ID:
		return o.ID
	case ScientificName:
		return o.ScientificName
	case Habitat:
		return o.Habitat
	case Locality:
		return o.Locality
	case WaterBody:
		return o.WaterBody
	case Country:
		return o.Country
	case MinimumDepth:
		return o.MinimumDepth
	case MaximumDepth:
		return o.MaximumDepth
	case DecimalLatitude:
		return o.DecimalLatitude
	case DecimalLongitude:
		return o.DecimalLongitude
	case EventDate:
		return o.EventDate
	case IndividualCount:
		return o.IndividualCount
	case IdentifiedBy:
		return o.IdentifiedBy
	case LifeStage:
		return o.LifeStage
	case Sex:
		return o.Sex
	case SamplingProtocol:
		return o.SamplingProtocol
	}
	return ""
}

// Set assigns the text value of the field.
func (f Field) Set(o *Occurrence, s string) {
	switch f {
	case ID:
		o.ID = s
	case ScientificName:
		o.ScientificName = s
	case Habitat:
		o.Habitat = s
	case Locality:
		o.Locality = s
	case WaterBody:
		o.WaterBody = s
	case Country:
		o.Country = s
	case MinimumDepth:
		o.MinimumDepth = s
	case MaximumDepth:
		o.MaximumDepth = s
	case DecimalLatitude:
		o.DecimalLatitude = s
	case DecimalLongitude:
		o.DecimalLongitude = s
	case EventDate:
		o.EventDate = s
	case IndividualCount:
		o.IndividualCount = s
	case IdentifiedBy:
		o.IdentifiedBy = s
	case LifeStage:
		o.LifeStage = s
	case Sex:
		o.Sex = s
	case SamplingProtocol:
		o.SamplingProtocol = s
	}
}
