package aggregation

import (
	"strconv"

	"github.com/montanaflynn/stats"
)

var demographicColumns = []string{"age", "gender", "nationality", "city", "travel_experience"}

// UserAggregateColumns is the header of user_aggregates.csv.
func UserAggregateColumns() []string {
	cols := append([]string{"user_id"}, demographicColumns...)
	for _, col := range PreferenceColumns {
		cols = append(cols, scoreColumn(col))
	}
	for _, col := range LikertColumns {
		cols = append(cols, col.Name)
	}
	return append(cols, "response_count")
}

type userAccumulator struct {
	first  Row
	values map[string]stats.Float64Data
	count  int
}

// AggregateUsers groups processed survey rows by user_id in first-seen
// order. Demographics take the first non-empty value, scores and Likert
// values are averaged over the non-missing ones.
func AggregateUsers(processed *Table) []Row {
	var order []string
	users := make(map[string]*userAccumulator)

	for _, row := range processed.Rows {
		id := row["user_id"]
		if id == "" {
			continue
		}
		acc, ok := users[id]
		if !ok {
			acc = &userAccumulator{first: Row{}, values: make(map[string]stats.Float64Data)}
			users[id] = acc
			order = append(order, id)
		}
		acc.count++

		for _, col := range demographicColumns {
			if acc.first[col] == "" && row[col] != "" {
				acc.first[col] = row[col]
			}
		}
		for _, col := range PreferenceColumns {
			acc.add(col, row[scoreColumn(col)])
		}
		for _, col := range LikertColumns {
			acc.add(col.Name, row[likertValueColumn(col.Name)])
		}
	}

	out := make([]Row, 0, len(order))
	for _, id := range order {
		acc := users[id]
		agg := Row{"user_id": id, "response_count": strconv.Itoa(acc.count)}
		for _, col := range demographicColumns {
			agg[col] = acc.first[col]
		}
		for _, col := range PreferenceColumns {
			agg[scoreColumn(col)] = meanCell(acc.values[col])
		}
		for _, col := range LikertColumns {
			agg[col.Name] = meanCell(acc.values[col.Name])
		}
		out = append(out, agg)
	}
	return out
}

func (a *userAccumulator) add(key, cell string) {
	if v, ok := ParseNumber(cell); ok {
		a.values[key] = append(a.values[key], v)
	}
}

// ColumnMean averages the non-missing numeric cells of one column.
func ColumnMean(t *Table, col string) (float64, bool) {
	var data stats.Float64Data
	for _, row := range t.Rows {
		if v, ok := ParseNumber(row[col]); ok {
			data = append(data, v)
		}
	}
	m, err := stats.Mean(data)
	if err != nil {
		return 0, false
	}
	return m, true
}

func meanCell(data stats.Float64Data) string {
	m, err := stats.Mean(data)
	if err != nil {
		return ""
	}
	m, _ = stats.Round(m, 4)
	return strconv.FormatFloat(m, 'f', -1, 64)
}
