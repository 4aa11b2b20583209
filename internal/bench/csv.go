package bench

import (
	"encoding/csv"
	"os"
)

var csvHeader = []string{
	"run_id", "preset", "seed",
	"members", "defences",
	"eligibility_mode", "p_member_zero", "p_room_zero",
	"g_star", "front_size",
	"skip_dominance", "skip_infeasible",
	"count_feasible", "count_infeasible",
	"time_feasible_ms", "time_infeasible_ms",
	"unexplored", "elapsed_ms",
}

func (r Record) row() []string {
	return []string{
		r.RunID,
		r.Preset,
		i64toa(r.Seed),

		itoa(r.Members),
		itoa(r.Defences),

		itoa(r.EligibilityMode),
		ftoa(r.PMemberZero),
		ftoa(r.PRoomZero),

		itoa(r.GStar),
		itoa(r.FrontSize),

		itoa(r.SkipDominance),
		itoa(r.SkipInfeasible),

		itoa(r.CountFeasible),
		itoa(r.CountInfeasible),

		ftoa(r.TimeFeasibleMs),
		ftoa(r.TimeInfeasibleMs),

		itoa(r.Unexplored),
		ftoa(r.ElapsedMs),
	}
}

// WriteCSV writes records to path, replacing any existing file.
func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r.row()); err != nil {
			return err
		}
	}
	return w.Error()
}

// AppendCSV appends one record to path, writing the header first when the
// file does not exist yet.
func AppendCSV(path string, r Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if fresh {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write(r.row()); err != nil {
		return err
	}
	return w.Error()
}
