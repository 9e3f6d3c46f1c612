package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateServiceIDs(t *testing.T) {
	tooMany := make([]int64, MaxServicesPerBooking+1)
	for i := range tooMany {
		tooMany[i] = int64(i + 1)
	}

	tests := []struct {
		name    string
		ids     []int64
		wantErr bool
	}{
		{"single", []int64{10}, false},
		{"several", []int64{10, 11, 12}, false},
		{"empty", nil, true},
		{"repeated", []int64{10, 11, 10}, true},
		{"zero", []int64{0}, true},
		{"negative", []int64{10, -1}, true},
		{"too many", tooMany, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceIDs(tt.ids)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
