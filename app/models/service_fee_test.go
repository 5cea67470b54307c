package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomDateJSON(t *testing.T) {
	var payload struct {
		BillingStartDate CustomDate `json:"billingStartDate"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"billingStartDate":"15/03/2026"}`), &payload))
	assert.Equal(t, 2026, payload.BillingStartDate.Year())
	assert.Equal(t, time.March, payload.BillingStartDate.Month())
	assert.Equal(t, 15, payload.BillingStartDate.Day())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"billingStartDate":"15/03/2026"}`, string(out))
}

func TestCustomDateUnmarshalNull(t *testing.T) {
	var date CustomDate
	require.NoError(t, date.UnmarshalJSON([]byte(`null`)))
	assert.True(t, date.IsZero())
}

func TestCustomDateUnmarshalRejectsOtherLayouts(t *testing.T) {
	var date CustomDate
	assert.Error(t, date.UnmarshalJSON([]byte(`"2026-03-15"`)))
}

func TestNextCycleDate(t *testing.T) {
	from := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		cycle BillingCycle
		want  time.Time
	}{
		{CycleWeekly, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)},
		{CycleMonthly, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)},
		{CycleQuarterly, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{CycleAnnually, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.cycle), func(t *testing.T) {
			fee := &ServiceFee{Cycle: tt.cycle}
			assert.Equal(t, tt.want, fee.NextCycleDate(from))
		})
	}
}

func TestNextCycleDateOneTimeNeverRecurs(t *testing.T) {
	fee := &ServiceFee{Cycle: CycleOneTime}
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, fee.NextCycleDate(from).After(from.AddDate(50, 0, 0)))
}
