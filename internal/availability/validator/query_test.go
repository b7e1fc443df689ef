package validator

import (
	"strings"
	"testing"

	"tably/pkg/logger"
)

func newTestValidator() *QueryValidator {
	return NewQueryValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func TestValidateAvailabilityQuery(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		query   AvailabilityQuery
		wantErr string
	}{
		{
			name:  "valid query",
			query: AvailabilityQuery{Date: "2026-09-10", PartySize: 4, BookingType: "regular"},
		},
		{
			name:  "booking type optional",
			query: AvailabilityQuery{Date: "2026-09-10", PartySize: 2},
		},
		{
			name:    "missing date",
			query:   AvailabilityQuery{PartySize: 4},
			wantErr: "Date",
		},
		{
			name:    "malformed date",
			query:   AvailabilityQuery{Date: "10/09/2026", PartySize: 4},
			wantErr: "YYYY-MM-DD",
		},
		{
			name:    "party size missing",
			query:   AvailabilityQuery{Date: "2026-09-10"},
			wantErr: "PartySize",
		},
		{
			name:    "party size too large",
			query:   AvailabilityQuery{Date: "2026-09-10", PartySize: 300},
			wantErr: "at most 200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.query)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateNextSlotQuery(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(NextSlotQuery{PartySize: 2, PreferredTime: "18:30"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.Validate(NextSlotQuery{PartySize: 2}); err != nil {
		t.Errorf("preferred time is optional: %v", err)
	}
	if err := v.Validate(NextSlotQuery{PartySize: 2, PreferredTime: "6pm"}); err == nil {
		t.Error("malformed preferred time must be rejected")
	}
}

func TestValidateRangeQuery(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(RangeQuery{StartDate: "2026-09-01", EndDate: "2026-09-07", PartySize: 2}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.Validate(RangeQuery{StartDate: "2026-09-01", PartySize: 2}); err == nil {
		t.Error("missing end date must be rejected")
	}
}
