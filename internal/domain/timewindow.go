package domain

import "time"

// Dataset epoch and the sample the served model snapshot corresponds to.
// Sample indices are hour offsets from the epoch, mirroring the training
// data layout.
var BaseDate = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

const FixedSampleIndex = 17

// TimeDetails describes the input and prediction windows of a run. Purely
// presentational; attached to a prediction verbatim from the backend, or
// computed locally for simulated runs.
type TimeDetails struct {
	InputStart string `json:"inputStart"`
	InputEnd   string `json:"inputEnd"`
	PredStart  string `json:"predStart"`
	PredEnd    string `json:"predEnd"`
	Date       string `json:"date"`
}

// TimeWindow computes the window metadata for a sample index: a SeqLen-hour
// input window starting at the index's hour offset from baseDate, followed by
// a Horizons-hour prediction window. Times format as HH:MM:SS, the date as
// the input window's start day.
func TimeWindow(sampleIndex int, baseDate time.Time) TimeDetails {
	inputStart := baseDate.Add(time.Duration(sampleIndex) * time.Hour)
	inputEnd := inputStart.Add((SeqLen - 1) * time.Hour)
	predStart := inputStart.Add(SeqLen * time.Hour)
	predEnd := predStart.Add((Horizons - 1) * time.Hour)

	return TimeDetails{
		InputStart: inputStart.Format("15:04:05"),
		InputEnd:   inputEnd.Format("15:04:05"),
		PredStart:  predStart.Format("15:04:05"),
		PredEnd:    predEnd.Format("15:04:05"),
		Date:       inputStart.Format("2006-01-02"),
	}
}
