package aggregation

import (
	"encoding/json"

	"poisurvey/internal/survey"
	"poisurvey/pkg/utils"
)

var (
	ListColumns       = []string{"hobbies", "interests", "preferred_travel_style"}
	PreferenceColumns = []string{
		"engaging_preference", "relevant_preference", "eager_preference",
		"title_preference", "description_preference",
	}
	RatingColumns = []string{"overall_rating", "adaptation_rating", "ai_comfort_rating"}
)

type likertColumn struct {
	Name  string
	Scale []string
}

var LikertColumns = []likertColumn{
	{"manual_significance", survey.RatingScale},
	{"manual_trust", survey.TrustScale},
	{"manual_clarity", survey.ClarityScale},
	{"ai_significance", survey.RatingScale},
	{"ai_trust", survey.TrustScale},
	{"ai_clarity", survey.ClarityScale},
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

func scoreColumn(pref string) string { return pref + "_score" }

func likertValueColumn(col string) string { return col + "_value" }

// ProcessSurvey returns a copy of the table with normalized list columns,
// derived date/time columns, preference scores and numeric Likert values.
// Values that cannot be interpreted are left missing and counted in missing.
func ProcessSurvey(t *Table, missing map[string]int) *Table {
	out := &Table{Columns: append([]string{}, t.Columns...)}
	for _, col := range ListColumns {
		out.addColumn(col)
	}
	for _, col := range []string{"response_date", "response_time"} {
		out.addColumn(col)
	}
	for _, col := range PreferenceColumns {
		out.addColumn(scoreColumn(col))
	}
	for _, col := range LikertColumns {
		out.addColumn(likertValueColumn(col.Name))
	}

	for _, in := range t.Rows {
		row := make(Row, len(out.Columns))
		for k, v := range in {
			row[k] = v
		}

		// an export without the column reads as empty lists
		for _, col := range ListColumns {
			items, err := ParseList(in[col])
			if err != nil {
				missing[col]++
				row[col] = ""
				continue
			}
			raw, _ := json.Marshal(items)
			row[col] = string(raw)
		}

		deriveDateTime(in, row, missing)

		for _, col := range PreferenceColumns {
			score, ok := PreferenceScore(in[col])
			if !ok {
				missing[scoreColumn(col)]++
			}
			row[scoreColumn(col)] = formatNumber(score, ok)
		}
		for _, col := range LikertColumns {
			v, ok := LikertScore(col.Scale, in[col.Name])
			if !ok {
				missing[likertValueColumn(col.Name)]++
			}
			row[likertValueColumn(col.Name)] = formatNumber(v, ok)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// ProcessFinal coerces the ratings to numbers and derives date/time.
func ProcessFinal(t *Table, missing map[string]int) *Table {
	out := &Table{Columns: append([]string{}, t.Columns...)}
	for _, col := range []string{"response_date", "response_time"} {
		out.addColumn(col)
	}

	for _, in := range t.Rows {
		row := make(Row, len(out.Columns))
		for k, v := range in {
			row[k] = v
		}
		deriveDateTime(in, row, missing)
		for _, col := range RatingColumns {
			n, ok := ParseNumber(in[col])
			if !ok {
				missing[col]++
			}
			row[col] = formatNumber(n, ok)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func deriveDateTime(in, row Row, missing map[string]int) {
	ts, err := utils.ParseRecordTime(in["timestamp"])
	if err != nil {
		missing["timestamp"]++
		row["response_date"], row["response_time"] = "", ""
		return
	}
	row["response_date"] = ts.Format(dateLayout)
	row["response_time"] = ts.Format(timeLayout)
}
