package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-04-24")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-24", d.String())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-04-24"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back.Time))

	// zero dates come out as null
	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	_, err = ParseDate("24/04/2026")
	assert.Error(t, err)
}

func TestTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", tod.String())

	data, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"09:00"`, string(data))

	var back TimeOfDay
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "09:00", back.String())

	// DB driver values carry seconds
	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", v)

	var scanned TimeOfDay
	require.NoError(t, scanned.Scan("10:30:00"))
	assert.Equal(t, "10:30", scanned.String())

	_, err = ParseTimeOfDay("9 o'clock")
	assert.Error(t, err)
}
