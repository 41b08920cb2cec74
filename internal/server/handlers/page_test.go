package handlers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vzahanych/rain-prediction-app/internal/features"
)

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0:         "0.0",
		2.5:       "2.5",
		-3:        "-3.0",
		1013.25:   "1013.25",
		0.0001:    "0.0001",
		0.00001:   "1e-05",
		-0.000025: "-2.5e-05",
		1e15:      "1000000000000000.0",
		1e16:      "1e+16",
		1e20:      "1e+20",
	}

	for in, want := range tests {
		assert.Equal(t, want, formatFloat(in))
	}
}

func TestTemplates_RenderPrediction(t *testing.T) {
	data := newPageData()
	data.Predicted = true
	data.Prediction = 0.75
	data.Input = features.Zero().Rows()

	var buf bytes.Buffer
	require.NoError(t, Templates().ExecuteTemplate(&buf, pageTemplate, data))

	assert.Contains(t, buf.String(), "Predicted rain amount: 0.75")
	assert.Contains(t, buf.String(), "<th>vwnd</th>")
}
