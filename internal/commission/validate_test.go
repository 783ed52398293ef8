package commission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEntryBounds(t *testing.T) {
	cases := []struct {
		name    string
		entry   Entry
		field   string
		message string
	}{
		{"negative markup", entry(-1, 0.01), "markup_percentage", "Markup percentage cannot be negative"},
		{"markup too large", entry(1001, 0.01), "markup_percentage", "Markup percentage cannot exceed 1000%"},
		{"negative factor", entry(10, -0.1), "commission_factor", "Commission factor cannot be negative"},
		{"factor too large", entry(10, 1.5), "commission_factor", "Commission factor cannot exceed 1.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEntry(tc.entry)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tc.field, verr.Field)
			require.Equal(t, tc.message, verr.Message)
		})
	}
}

func TestValidateEntryAcceptsLimits(t *testing.T) {
	require.NoError(t, ValidateEntry(entry(0, 0)))
	require.NoError(t, ValidateEntry(entry(1000, 1)))
}

func TestCheckUniqueAmongActive(t *testing.T) {
	existing := entry(20, 0.010)
	retired := entry(25, 0.012)
	retired.Active = false

	err := CheckUnique(entry(20, 0.02), []Entry{existing, retired})
	require.ErrorIs(t, err, ErrValidation)
	require.EqualError(t, err, "Markup percentage 20% already exists")

	require.NoError(t, CheckUnique(entry(25, 0.02), []Entry{existing, retired}))

	// Updating an entry in place never conflicts with itself.
	same := existing
	same.Factor = 0.2
	require.NoError(t, CheckUnique(same, []Entry{existing}))

	// Inactive candidates may share a percentage.
	shadow := entry(20, 0.3)
	shadow.Active = false
	require.NoError(t, CheckUnique(shadow, []Entry{existing}))
}
