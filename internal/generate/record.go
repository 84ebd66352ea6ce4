package generate

import (
	"strconv"
	"time"

	"github.com/roach88/commodex/internal/spec"
)

// Column names the generator can produce.
const (
	ColDate        = "date"
	ColCommodity   = "commodity"
	ColMetric      = "metric"
	ColValue       = "value"
	ColUnit        = "unit"
	ColSource      = "source"
	ColRetrievedAt = "retrieved_at"
)

// CanonicalColumns is the column order used when the specification does not
// declare a schema for the destination.
var CanonicalColumns = []string{
	ColDate, ColCommodity, ColMetric, ColValue, ColUnit, ColSource, ColRetrievedAt,
}

const (
	unitLabel  = "USD/t"
	sourceTag  = "demo"
	dateWindow = 30
	valueBase  = 10000
	valueStep  = 10
	valueCycle = 200
)

// Record is one generated row.
type Record struct {
	Date        time.Time
	Commodity   string
	Metric      string
	Value       float64
	Unit        string
	Source      string
	RetrievedAt time.Time
}

// Records produces n rows for s as of now.
func Records(s *spec.Spec, n int, now time.Time) []Record {
	commodities := s.CommodityList()
	metrics := s.MetricList()

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, Record{
			Date:        today.AddDate(0, 0, -(i % dateWindow)),
			Commodity:   commodities[i%len(commodities)],
			Metric:      metrics[i%len(metrics)],
			Value:       float64(valueBase + (i%valueCycle)*valueStep),
			Unit:        unitLabel,
			Source:      sourceTag,
			RetrievedAt: now,
		})
	}
	return records
}

// Field renders the named column of r. The boolean is false for columns the
// generator does not produce.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case ColDate:
		return r.Date.Format(time.DateOnly), true
	case ColCommodity:
		return r.Commodity, true
	case ColMetric:
		return r.Metric, true
	case ColValue:
		return strconv.FormatFloat(r.Value, 'f', 1, 64), true
	case ColUnit:
		return r.Unit, true
	case ColSource:
		return r.Source, true
	case ColRetrievedAt:
		return FormatTimestamp(r.RetrievedAt), true
	default:
		return "", false
	}
}

// FormatTimestamp renders t in UTC as ISO-8601 with an explicit +00:00
// offset and microsecond precision, omitting the fraction when it is zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}

func knownColumn(name string) bool {
	_, ok := Record{}.Field(name)
	return ok
}
