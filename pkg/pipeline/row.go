package pipeline

// Row is one group produced by a grouped pipeline.
type Row struct {
	// Key is the value of the group field. It is empty for whole-collection
	// groups.
	Key string

	// Numbers keeps results of numeric accumulators. Nil means no valid
	// value existed in the group.
	Numbers map[string]*float64

	// Texts keeps results of MinText and MaxText. Empty string means no
	// value existed in the group.
	Texts map[string]string

	// Sets keeps results of AddToSet.
	Sets map[string][]string
}

// NewRow creates a row with initialized maps.
func NewRow(key string) Row {
	return Row{
		Key:     key,
		Numbers: make(map[string]*float64),
		Texts:   make(map[string]string),
		Sets:    make(map[string][]string),
	}
}

// Int returns a numeric result as an integer, 0 for null.
func (r Row) Int(name string) int {
	if v := r.Numbers[name]; v != nil {
		return int(*v)
	}
	return 0
}

// Float returns a numeric result, nil when there was no valid value.
func (r Row) Float(name string) *float64 {
	return r.Numbers[name]
}

// Text returns a text result.
func (r Row) Text(name string) string {
	return r.Texts[name]
}

// Set returns a set result. It is never nil.
func (r Row) Set(name string) []string {
	if v := r.Sets[name]; v != nil {
		return v
	}
	return []string{}
}
