package pipeline

import "github.com/gnames/gnmarine/pkg/occurrence"

// Stage is one step of a pipeline: Match, GroupBy, Sort, Skip or Limit.
type Stage interface {
	isStage()
}

// Match keeps records selected by the filter. Several Match stages
// are combined with And.
type Match struct {
	Filter Filter
}

// GroupBy folds matching records into rows. With Whole set, all records
// form one group and Key is ignored.
type GroupBy struct {
	Key          occurrence.Field
	Whole        bool
	Accumulators []Accumulator
}

// Sort orders records or rows. Earlier keys take precedence. Remaining
// ties keep first appearance order.
type Sort struct {
	Keys []SortKey
}

// Skip drops the first N results.
type Skip struct {
	N int
}

// Limit keeps at most N results.
type Limit struct {
	N int
}

func (Match) isStage()   {}
func (GroupBy) isStage() {}
func (Sort) isStage()    {}
func (Skip) isStage()    {}
func (Limit) isStage()   {}

// GroupByField groups records by the value of a field.
func GroupByField(f occurrence.Field, accs ...Accumulator) GroupBy {
	return GroupBy{Key: f, Accumulators: accs}
}

// GroupAll folds all matching records into one row.
func GroupAll(accs ...Accumulator) GroupBy {
	return GroupBy{Whole: true, Accumulators: accs}
}

// Op is an accumulator operation.
type Op int

const (
	// Count is the number of records in a group.
	Count Op = iota
	// Sum adds valid numbers. It is 0 when no value is valid.
	Sum
	// SumCounts adds valid individual counts. It is 0 when no value is valid.
	SumCounts
	// Min is the smallest valid number, null when there is none.
	Min
	// Max is the largest valid number, null when there is none.
	Max
	// Avg is the mean of valid numbers, null when there is none.
	Avg
	// MinText is the lexically smallest non-empty value.
	MinText
	// MaxText is the lexically largest non-empty value.
	MaxText
	// AddToSet collects distinct non-empty values in ascending order.
	AddToSet
)

// Kind tells which part of a Row keeps the result of an operation.
type Kind int

const (
	NumberKind Kind = iota
	TextKind
	SetKind
)

// Kind returns where results of the operation are stored.
func (o Op) Kind() Kind {
	switch o {
	case MinText, MaxText:
		return TextKind
	case AddToSet:
		return SetKind
	default:
		return NumberKind
	}
}

// Nullable is true for operations that have no value over an empty input.
func (o Op) Nullable() bool {
	switch o {
	case Min, Max, Avg, MinText, MaxText:
		return true
	}
	return false
}

func (o Op) String() string {
	switch o {
	case Count:
		return "count"
	case Sum:
		return "sum"
	case SumCounts:
		return "sumCounts"
	case Min:
		return "min"
	case Max:
		return "max"
	case Avg:
		return "avg"
	case MinText:
		return "minText"
	case MaxText:
		return "maxText"
	case AddToSet:
		return "addToSet"
	}
	return "unknown"
}

// Accumulator computes a named value per group.
type Accumulator struct {
	Name  string
	Op    Op
	Field occurrence.Field
}

// CountAs counts records of a group.
func CountAs(name string) Accumulator {
	return Accumulator{Name: name, Op: Count}
}

// Acc creates an accumulator of a field.
func Acc(name string, op Op, f occurrence.Field) Accumulator {
	return Accumulator{Name: name, Op: op, Field: f}
}

// SortKey is one ordering criterion. Grouped pipelines sort by a
// non-nullable numeric accumulator named by Acc. Ungrouped pipelines
// sort by the text of Field.
type SortKey struct {
	Acc   string
	Field occurrence.Field
	Desc  bool
}

// ByAcc orders rows by an accumulator.
func ByAcc(name string, desc bool) SortKey {
	return SortKey{Acc: name, Desc: desc}
}

// ByField orders records by a field value.
func ByField(f occurrence.Field, desc bool) SortKey {
	return SortKey{Field: f, Desc: desc}
}
