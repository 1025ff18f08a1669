package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	a := domain.Assessment{
		ID:     "quake-1",
		Record: domain.RawRecord{Magnitude: 6.5, Depth: 10, Latitude: 35, Longitude: -120, Location: "California"},
		Result: domain.PredictionResult{
			Label:         "Severe",
			Classes:       []string{"Low", "Moderate", "Severe"},
			Probabilities: []float64{0.1, 0.2, 0.7},
		},
		ScoredAt: now,
	}

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte("quake-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"label":"Severe"`)
	assert.Contains(t, string(msg.Value), `"location":"California"`)
	assert.NotContains(t, string(msg.Value), "place_name", "empty enrichment fields are omitted")
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "label", msg.Headers[0].Key)
	assert.Equal(t, []byte("Severe"), msg.Headers[0].Value)
	assert.Equal(t, "scored_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var decoded domain.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, a.Result, decoded.Result)
}
