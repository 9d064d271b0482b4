package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		label string
		want  Weekday
	}{
		{"Domingo", Sunday},
		{"Lunes", Monday},
		{"martes", Tuesday},
		{"Miércoles", Wednesday},
		{"miercoles", Wednesday},
		{"  MIÉRCOLES  ", Wednesday},
		{"Jueves", Thursday},
		{"viernes", Friday},
		{"Sábado", Saturday},
		{"sabado", Saturday},
		{"sab", Saturday},
		{"Monday", Monday},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseWeekday(tt.label)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWeekdayUnknown(t *testing.T) {
	for _, label := range []string{"", "feriado", "lunesx", "7"} {
		t.Run(label, func(t *testing.T) {
			_, err := ParseWeekday(label)
			assert.ErrorIs(t, err, ErrUnknownWeekday)
		})
	}
}

func TestWeekdayLabel(t *testing.T) {
	assert.Equal(t, "Miércoles", Wednesday.Label())
	assert.Equal(t, "Domingo", Sunday.Label())
	assert.Equal(t, "", Weekday(9).Label())

	for d := Sunday; d <= Saturday; d++ {
		parsed, err := ParseWeekday(d.Label())
		assert.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:05")
	assert.NoError(t, err)
	assert.Equal(t, Clock(545), c)
	assert.Equal(t, "09:05", c.String())

	c, err = ParseClock("7:30:00")
	assert.NoError(t, err)
	assert.Equal(t, "07:30", c.String())

	for _, bad := range []string{"", "24:00", "10:60", "10", "ab:cd", "10:5", "10:00:99"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClock, bad)
	}
}
