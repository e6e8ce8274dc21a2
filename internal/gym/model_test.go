package gym

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchValid(t *testing.T) {
	assert.True(t, BranchMale.Valid())
	assert.True(t, BranchFemale.Valid())
	assert.False(t, Branch("mixed").Valid())
	assert.False(t, Branch("").Valid())
}

func TestSettingsScan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want Settings
	}{
		{"nil", nil, Settings{}},
		{"empty bytes", []byte{}, Settings{}},
		{"bytes", []byte(`{"a":1}`), Settings{"a": float64(1)}},
		{"string", `{"theme":"dark"}`, Settings{"theme": "dark"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Settings
			require.NoError(t, s.Scan(tt.src))
			assert.Equal(t, tt.want, s)
		})
	}

	var s Settings
	assert.Error(t, s.Scan(42))
	assert.Error(t, s.Scan("not json"))
}

func TestSettingsValue(t *testing.T) {
	v, err := Settings(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = Settings{"currency": "DZD"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"DZD"}`, v.(string))
}
