package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/habitat/internal/model"
)

// writeJournal creates a temp JSONL file and returns its path.
func writeJournal(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_Transactions(t *testing.T) {
	path := writeJournal(t,
		`{"kind":"transaction","amount":"12.50","category":"food","type":"expense","date":"2026-10-01","description":"lunch"}`,
		`{"kind":"transaction","amount":3000,"category":"salary","type":"income","date":"2026-10-01"}`,
	)

	res := ParseFile(path, time.UTC)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(res.Records))
	}

	tx := res.Records[0].Transaction
	if tx == nil {
		t.Fatal("first record is not a transaction")
	}
	if tx.Amount.String() != "12.5" {
		t.Errorf("Amount = %s, want 12.5", tx.Amount)
	}
	if tx.Type != model.Expense || tx.Category != "food" || tx.Description != "lunch" {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if got := tx.Date.Format("2006-01-02"); got != "2026-10-01" {
		t.Errorf("Date = %s", got)
	}
	if res.Records[1].Line != 2 {
		t.Errorf("Line = %d, want 2", res.Records[1].Line)
	}
}

func TestParseFile_SkipsAndCountsBadLines(t *testing.T) {
	path := writeJournal(t,
		`# exported 2026-10-18`,
		``,
		`{"kind":"transaction","amount":"-5","category":"food","type":"expense","date":"2026-10-01"}`,
		`{"kind":"transaction","amount":"5","category":"food","type":"expense","date":"10/01/2026"}`,
		`{"kind":"transaction","amount":"5",`,
		`{"kind":"alien","x":1}`,
		`{"note":"no kind"}`,
		`{"kind":"weight","weight":80.5,"date":"2026-10-02"}`,
	)

	res := ParseFile(path, time.UTC)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Records) != 1 || res.Records[0].Weight == nil {
		t.Fatalf("Records = %+v, want one weight", res.Records)
	}
	if res.ParseErrors != 3 {
		t.Errorf("ParseErrors = %d, want 3", res.ParseErrors)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
	if res.Lines != 8 {
		t.Errorf("Lines = %d, want 8", res.Lines)
	}
}

func TestParseFile_AllKinds(t *testing.T) {
	path := writeJournal(t,
		`{"kind":"budget","category":"food","amount":"200","period":"monthly"}`,
		`{"kind":"goal","name":"Trip","target":"1000","current":"400","deadline":"2027-06-01"}`,
		`{"kind":"measurement","date":"2026-10-02","waist":85,"neck":38}`,
		`{"kind":"exercise","name":"Run","type":"cardio","date":"2026-10-02","details":{"duration":30,"distance":5}}`,
		`{"kind":"exercise","name":"Bench","type":"strength","date":"2026-10-03","details":{"sets":3,"reps":8,"weight":60}}`,
		`{"kind":"habit","name":"Water","target":8}`,
		`{"kind":"habit","name":"Read"}`,
		`{"kind":"habit_entry","habit":"Water","date":"2026-10-02","count":5}`,
	)

	res := ParseFile(path, time.UTC)
	if res.ParseErrors != 0 {
		t.Fatalf("ParseErrors = %d, want 0", res.ParseErrors)
	}
	if len(res.Records) != 8 {
		t.Fatalf("Records = %d, want 8", len(res.Records))
	}

	if g := res.Records[1].Goal; g == nil || g.Deadline == nil || g.CurrentAmount.String() != "400" {
		t.Errorf("goal not parsed: %+v", res.Records[1].Goal)
	}
	if m := res.Records[2].Measurement; m == nil || m.Measurements.Waist == nil || *m.Measurements.Waist != 85 {
		t.Errorf("measurement not parsed: %+v", res.Records[2].Measurement)
	}

	run := res.Records[3].Exercise
	if run == nil || run.Kind() != model.Cardio {
		t.Fatalf("cardio not parsed: %+v", run)
	}
	bench := res.Records[4].Exercise.Details.(model.StrengthDetails)
	if bench.SetCount() != 3 || bench.Volume() != 1440 {
		t.Errorf("legacy strength: sets=%d volume=%v", bench.SetCount(), bench.Volume())
	}

	if h := res.Records[6].Habit; h == nil || h.TargetCount != 1 {
		t.Errorf("habit default target: %+v", h)
	}
	if e := res.Records[7].HabitEntry; e == nil || e.Habit != "Water" || e.Count == nil || *e.Count != 5 {
		t.Errorf("habit entry: %+v", e)
	}
}

func TestExtractTopLevelKind_IgnoresNested(t *testing.T) {
	line := []byte(`{"details":{"kind":"habit"},"name":"x","kind":"exercise"}`)
	if got := extractTopLevelKind(line); got != KindExercise {
		t.Errorf("extractTopLevelKind = %q, want exercise", got)
	}
	if got := extractTopLevelKind([]byte(`{"name":"kind","x":1}`)); got != "" {
		t.Errorf("value named kind matched: %q", got)
	}
}

func TestScanPath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.ndjson", "notes.txt", ".hidden/c.jsonl"} {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.ndjson" || filepath.Base(files[1]) != "b.jsonl" {
		t.Errorf("ScanPath = %v", files)
	}

	single, err := ScanPath(filepath.Join(dir, "notes.txt"))
	if err != nil || len(single) != 1 {
		t.Errorf("single file: %v %v", single, err)
	}

	if _, err := ScanPath(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing path")
	}
}
