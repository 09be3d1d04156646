// Package source discovers and parses JSONL journal files into records.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/theirongolddev/habitat/internal/model"
	"github.com/theirongolddev/habitat/internal/period"
)

// Record is one parsed journal line. Exactly one payload field is set.
type Record struct {
	Line        int
	Kind        string
	Transaction *model.Transaction
	Budget      *model.Budget
	Goal        *model.Goal
	Weight      *model.WeightEntry
	Measurement *model.BodyMeasurement
	Exercise    *model.Exercise
	Habit       *model.Habit
	HabitEntry  *HabitEntryRecord
}

// HabitEntryRecord is a habit entry whose habit is resolved by name on import.
// A nil Count means the entry marks the habit complete.
type HabitEntryRecord struct {
	Habit     string
	Date      time.Time
	Count     *int
	Completed *bool
}

// ParseResult holds the output of parsing a single journal file.
type ParseResult struct {
	Records     []Record
	Lines       int
	Skipped     int
	ParseErrors int
	Err         error
}

// ParseFile reads a JSONL journal. Blank lines, comments and unknown kinds
// are skipped; malformed or invalid lines are counted and skipped. Dates are
// read as calendar days in loc.
func ParseFile(path string, loc *time.Location) ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var res ParseResult
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		res.Lines++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		kind := extractTopLevelKind(line)
		if kind == "" {
			res.Skipped++
			continue
		}

		rec, err := parseLine(kind, line, loc)
		if err != nil {
			res.ParseErrors++
			slog.Debug("journal line rejected", "file", path, "line", res.Lines, "kind", kind, "error", err)
			continue
		}
		rec.Line = res.Lines
		res.Records = append(res.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		res.Err = err
	}
	return res
}

func parseLine(kind string, line []byte, loc *time.Location) (Record, error) {
	rec := Record{Kind: kind}

	switch kind {
	case KindTransaction:
		var raw RawTransaction
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		d, err := period.ParseDay(raw.Date, loc)
		if err != nil {
			return rec, err
		}
		t := model.Transaction{
			Amount:      raw.Amount,
			Category:    raw.Category,
			Type:        model.TransactionType(raw.Type),
			Date:        d,
			Description: raw.Description,
		}
		if err := t.Validate(); err != nil {
			return rec, err
		}
		rec.Transaction = &t

	case KindBudget:
		var raw RawBudget
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		b := model.Budget{Category: raw.Category, Amount: raw.Amount, Period: model.Period(raw.Period)}
		if raw.StartDate != "" {
			d, err := period.ParseDay(raw.StartDate, loc)
			if err != nil {
				return rec, err
			}
			b.StartDate = d
		}
		if err := b.Validate(); err != nil {
			return rec, err
		}
		rec.Budget = &b

	case KindGoal:
		var raw RawGoal
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		g := model.Goal{Name: raw.Name, TargetAmount: raw.Target, CurrentAmount: raw.Current}
		if raw.Deadline != "" {
			d, err := period.ParseDay(raw.Deadline, loc)
			if err != nil {
				return rec, err
			}
			g.Deadline = &d
		}
		if err := g.Validate(); err != nil {
			return rec, err
		}
		rec.Goal = &g

	case KindWeight:
		var raw RawWeight
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		d, err := period.ParseDay(raw.Date, loc)
		if err != nil {
			return rec, err
		}
		w := model.WeightEntry{Weight: raw.Weight, Date: d, Notes: raw.Notes}
		if err := w.Validate(); err != nil {
			return rec, err
		}
		rec.Weight = &w

	case KindMeasurement:
		var raw RawMeasurement
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		d, err := period.ParseDay(raw.Date, loc)
		if err != nil {
			return rec, err
		}
		m := model.BodyMeasurement{Date: d, Measurements: model.Measurements{
			Height: raw.Height, Waist: raw.Waist, Chest: raw.Chest, Hip: raw.Hip,
			Neck: raw.Neck, Bicep: raw.Bicep, Thigh: raw.Thigh,
		}}
		if err := m.Validate(); err != nil {
			return rec, err
		}
		rec.Measurement = &m

	case KindExercise:
		var raw RawExercise
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		d, err := period.ParseDay(raw.Date, loc)
		if err != nil {
			return rec, err
		}
		details, err := model.DecodeExerciseDetails(model.ExerciseKind(raw.Type), raw.Name, raw.Details)
		if err != nil {
			return rec, err
		}
		e := model.Exercise{Name: raw.Name, Date: d, Details: details}
		if err := e.Validate(); err != nil {
			return rec, err
		}
		rec.Exercise = &e

	case KindHabit:
		var raw RawHabit
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		if raw.Target == 0 {
			raw.Target = 1
		}
		h := model.Habit{
			Name: raw.Name, Category: raw.Category, Frequency: model.Daily,
			TargetCount: raw.Target, Color: raw.Color, Icon: raw.Icon,
		}
		if err := h.Validate(); err != nil {
			return rec, err
		}
		rec.Habit = &h

	case KindHabitEntry:
		var raw RawHabitEntry
		if err := json.Unmarshal(line, &raw); err != nil {
			return rec, err
		}
		if raw.Habit == "" {
			return rec, model.ErrEmptyName
		}
		d, err := period.ParseDay(raw.Date, loc)
		if err != nil {
			return rec, err
		}
		if raw.Count != nil && *raw.Count < 0 {
			return rec, model.ErrInvalidCount
		}
		rec.HabitEntry = &HabitEntryRecord{Habit: raw.Habit, Date: d, Count: raw.Count, Completed: raw.Done}

	default:
		return rec, fmt.Errorf("unknown record kind %q", kind)
	}

	return rec, nil
}

// kindKey is the byte sequence for a JSON key named "kind" (with quotes).
var kindKey = []byte(`"kind"`)

// extractTopLevelKind finds the top-level "kind" field of a JSONL line.
// Tracks brace depth and string boundaries so nested "kind" keys, such as
// inside exercise details, are ignored.
func extractTopLevelKind(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], kindKey) {
				if val, isKey := classifyKind(line, i+len(kindKey)); isKey {
					return val
				}
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

func classifyKind(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true
	}
	i++

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 20 {
		return "", true
	}
	v := string(line[i : i+end])
	switch v {
	case KindTransaction, KindBudget, KindGoal, KindWeight, KindMeasurement,
		KindExercise, KindHabit, KindHabitEntry:
		return v, true
	}
	return "", true
}

func skipJSONString(line []byte, i int) int {
	i++
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
