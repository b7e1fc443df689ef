package service

import (
	"reflect"
	"testing"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		opens    string
		closes   string
		interval int
		want     []string
	}{
		{
			name:     "standard evening window",
			opens:    "17:00",
			closes:   "19:00",
			interval: 30,
			want:     []string{"17:00", "17:30", "18:00", "18:30"},
		},
		{
			name:     "closing time itself is not a slot",
			opens:    "12:00",
			closes:   "13:00",
			interval: 30,
			want:     []string{"12:00", "12:30"},
		},
		{
			name:     "interval not dividing the window",
			opens:    "12:00",
			closes:   "13:15",
			interval: 30,
			want:     []string{"12:00", "12:30", "13:00"},
		},
		{
			name:     "hourly interval",
			opens:    "09:00",
			closes:   "12:00",
			interval: 60,
			want:     []string{"09:00", "10:00", "11:00"},
		},
		{
			name:     "inverted window yields nothing",
			opens:    "18:00",
			closes:   "12:00",
			interval: 30,
			want:     nil,
		},
		{
			name:     "equal open and close yields nothing",
			opens:    "12:00",
			closes:   "12:00",
			interval: 30,
			want:     nil,
		},
		{
			name:     "malformed open yields nothing",
			opens:    "noon",
			closes:   "14:00",
			interval: 30,
			want:     nil,
		},
		{
			name:     "zero interval yields nothing",
			opens:    "12:00",
			closes:   "14:00",
			interval: 0,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.opens, tt.closes, tt.interval)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateSlots(%q, %q, %d) = %v, want %v", tt.opens, tt.closes, tt.interval, got, tt.want)
			}
		})
	}
}

func TestMinuteOfDay(t *testing.T) {
	if min, err := minuteOfDay("13:45"); err != nil || min != 825 {
		t.Errorf("minuteOfDay(13:45) = %d, %v; want 825, nil", min, err)
	}
	if _, err := minuteOfDay("24:00"); err == nil {
		t.Error("minuteOfDay(24:00) should be rejected")
	}
	if _, err := minuteOfDay("12:60"); err == nil {
		t.Error("minuteOfDay(12:60) should be rejected")
	}
}
