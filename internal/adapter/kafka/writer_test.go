package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
)

func sampleRecord() domain.RunRecord {
	return domain.RunRecord{
		RunID:  "3b2f1d9c-0000-4000-8000-000000000000",
		Source: "simulated",
		Bounds: domain.Bounds{
			LatMin: 30.2, LatMax: 30.3,
			LonMin: 77.8, LonMax: 77.9,
		},
		Center:           domain.Geo{Lat: 30.25, Lon: 77.85},
		MaxProbabilities: []float64{0.52, 0.61, 0.58},
		Warning:          "model backend unreachable; showing simulated probabilities",
		CompletedAt:      time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	rec := sampleRecord()

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)

	assert.Equal(t, []byte(rec.RunID), msg.Key)

	var decoded domain.RunRecord
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, rec, decoded)
}

func TestSerializeToMessage_Headers(t *testing.T) {
	msg, err := serializeToMessage(sampleRecord())
	require.NoError(t, err)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "simulated", headers["source"])
	assert.Equal(t, "2025-06-01T12:30:00Z", headers["completed_at"])
}

func TestSerializeToMessage_OmitsEmptyWarning(t *testing.T) {
	rec := sampleRecord()
	rec.Source = "model"
	rec.Warning = ""

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), "warning")
}
