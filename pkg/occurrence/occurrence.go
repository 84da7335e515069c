// Package occurrence describes raw marine species observations and the
// total parsing functions for their text-encoded values.
package occurrence

import (
	"strings"

	"github.com/gnames/gnlib"
)

// UnknownSpecies is the common name given to records without a
// scientific name.
const UnknownSpecies = "Unknown Species"

// Occurrence is one raw observation of a species at a place and time.
// Values are kept as text the way occurrence datasets deliver them.
// Numeric fields are interpreted with ParseNumber and ParseCount.
type Occurrence struct {
	ID               string `json:"id"`
	ScientificName   string `json:"scientificName"`
	Habitat          string `json:"habitat"`
	Locality         string `json:"locality"`
	WaterBody        string `json:"waterBody"`
	Country          string `json:"country"`
	MinimumDepth     string `json:"minimumDepthInMeters"`
	MaximumDepth     string `json:"maximumDepthInMeters"`
	DecimalLatitude  string `json:"decimalLatitude"`
	DecimalLongitude string `json:"decimalLongitude"`
	EventDate        string `json:"eventDate"`
	IndividualCount  string `json:"individualCount"`
	IdentifiedBy     string `json:"identifiedBy"`
	LifeStage        string `json:"lifeStage"`
	Sex              string `json:"sex"`
	SamplingProtocol string `json:"samplingProtocol"`
}

// CommonName derives a display name from a scientific name. It is the
// first whitespace-delimited token, or UnknownSpecies if the name is empty.
func CommonName(scientificName string) string {
	fs := strings.Fields(scientificName)
	if len(fs) == 0 {
		return UnknownSpecies
	}
	return fs[0]
}

// FixUtf8 replaces invalid UTF-8 sequences in all text values of the
// occurrence.
func (o *Occurrence) FixUtf8() {
	for _, f := range Fields {
		if v := f.Value(o); v != "" {
			f.Set(o, gnlib.FixUtf8(v))
		}
	}
}
