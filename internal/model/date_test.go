package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeAt(t *testing.T) {
	birth := NewDate(1950, time.May, 10)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"day before birthday", time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), 73},
		{"on birthday", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), 74},
		{"day after birthday", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), 74},
		{"earlier month", time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), 73},
		{"later month", time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), 74},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(birth, tt.today))
		})
	}
}

func TestParseDate(t *testing.T) {
	iso, err := ParseDate("1950-05-10")
	require.NoError(t, err)

	legacy, err := ParseDate("10/05/1950")
	require.NoError(t, err)

	assert.Equal(t, iso, legacy)
	assert.Equal(t, "1950-05-10", iso.String())

	_, err = ParseDate("05-10-1950")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		BirthDate Date `json:"birth_date"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"birth_date":"10/05/1950"}`), &p))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"birth_date":"1950-05-10"}`, string(out))
}

func TestShiftValid(t *testing.T) {
	assert.True(t, ShiftMorning.Valid())
	assert.True(t, ShiftAfternoon.Valid())
	assert.False(t, Shift("evening").Valid())
}
