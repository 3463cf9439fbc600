package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperatureFile(t *testing.T) {
	data := `# month day year temp_f
7 1 2024 82.5
7 2 2024 79.0

7,3,2024,91.2
`
	records, dropped, err := TemperatureFile(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, records, 3)

	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, 82.5, records[0].TempF)

	// Comma-delimited lines parse the same as whitespace-delimited
	assert.Equal(t, time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC), records[2].Date)
	assert.Equal(t, 91.2, records[2].TempF)
}

func TestTemperatureFileDropsMalformedLines(t *testing.T) {
	data := `7 1 2024 82.5
not a temperature line
13 1 2024 80.0
7 2 2024
7 2 2024 79.0
`
	records, dropped, err := TemperatureFile(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, records, 2)
}

func TestTemperatureFileEmpty(t *testing.T) {
	records, dropped, err := TemperatureFile(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	assert.Empty(t, records)
}
