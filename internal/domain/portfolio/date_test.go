package portfolio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
	}{
		{name: "iso date", input: `"2024-03-15"`, want: NewDate(2024, time.March, 15)},
		{name: "timestamp", input: `"2024-03-15T10:20:30"`, want: NewDate(2024, time.March, 15)},
		{name: "array", input: `[2024,3,15]`, want: NewDate(2024, time.March, 15)},
		{name: "empty string", input: `""`, want: Date{}},
		{name: "null", input: `null`, want: Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d)
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"15/03/2024"`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Date `json:"a"`
		B Date `json:"b"`
	}{A: NewDate(2023, time.January, 2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"2023-01-02","b":null}`, string(out))
}

func TestPeriod(t *testing.T) {
	e := Experience{StartDate: NewDate(2020, time.January, 1), EndDate: NewDate(2022, time.June, 1)}
	assert.Equal(t, "Jan 2020 - Jun 2022", e.Period())

	e.IsCurrent = true
	assert.Equal(t, "Jan 2020 - Present", e.Period())

	e.Normalize()
	assert.True(t, e.EndDate.IsZero())
}
