package aggregation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"poisurvey/internal/survey"
)

// ParseList reads a list cell written either as a JSON array or as a
// Python list literal (['a', "b"]). Blank cells are the empty list.
func ParseList(cell string) ([]string, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "nan" {
		return []string{}, nil
	}

	var out []string
	if err := json.Unmarshal([]byte(cell), &out); err == nil {
		if out == nil {
			out = []string{}
		}
		return out, nil
	}
	return parseLiteralList(cell)
}

func parseLiteralList(cell string) ([]string, error) {
	if !strings.HasPrefix(cell, "[") || !strings.HasSuffix(cell, "]") {
		return nil, fmt.Errorf("not a list: %q", cell)
	}
	body := []rune(strings.TrimSpace(cell[1 : len(cell)-1]))
	out := []string{}

	for i := 0; i < len(body); {
		for i < len(body) && (body[i] == ' ' || body[i] == ',') {
			i++
		}
		if i >= len(body) {
			break
		}
		quote := body[i]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("unquoted list item in %q", cell)
		}
		i++

		var item strings.Builder
		closed := false
		for i < len(body) {
			c := body[i]
			if c == '\\' && i+1 < len(body) {
				item.WriteRune(body[i+1])
				i += 2
				continue
			}
			i++
			if c == quote {
				closed = true
				break
			}
			item.WriteRune(c)
		}
		if !closed {
			return nil, fmt.Errorf("unterminated string in %q", cell)
		}
		out = append(out, item.String())
	}
	return out, nil
}

// PreferenceScore maps a recorded preference to +1 (original preferred),
// -1 (generated preferred) or 0 (both equally). Anything else is missing.
func PreferenceScore(v string) (float64, bool) {
	switch strings.TrimSpace(v) {
	case survey.VersionManual:
		return 1, true
	case survey.VersionAI:
		return -1, true
	case survey.BothEqually:
		return 0, true
	default:
		return 0, false
	}
}

// LikertScore maps an answer to 1..5 using the scale it was asked on.
func LikertScore(scale []string, v string) (float64, bool) {
	v = strings.TrimSpace(v)
	for i, label := range scale {
		if label == v {
			return float64(i + 1), true
		}
	}
	return 0, false
}

// ParseNumber coerces a rating cell; invalid input is missing.
func ParseNumber(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
