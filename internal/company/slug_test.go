package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme", "acme"},
		{"punctuation collapses", "Acme, Inc.", "acme-inc"},
		{"spaces become hyphens", "PT Maju Jaya", "pt-maju-jaya"},
		{"repeated separators collapse", "A  --  B", "a-b"},
		{"leading and trailing stripped", "  Acme!  ", "acme"},
		{"digits kept", "Studio 54", "studio-54"},
		{"only separators", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSetSetting_DotPath(t *testing.T) {
	settings := setSetting(nil, "payroll.cycle", "monthly")

	v, ok := getSetting(settings, "payroll.cycle")
	assert.True(t, ok)
	assert.Equal(t, "monthly", v)

	// Sibling keys under the same branch survive.
	settings = setSetting(settings, "payroll.currency", "IDR")
	v, ok = getSetting(settings, "payroll.cycle")
	assert.True(t, ok)
	assert.Equal(t, "monthly", v)

	v, ok = getSetting(settings, "payroll.currency")
	assert.True(t, ok)
	assert.Equal(t, "IDR", v)
}

func TestSetSetting_OverwritesScalarIntermediate(t *testing.T) {
	settings := setSetting(nil, "payroll", "legacy")
	settings = setSetting(settings, "payroll.cycle", "weekly")

	v, ok := getSetting(settings, "payroll.cycle")
	assert.True(t, ok)
	assert.Equal(t, "weekly", v)
}

func TestGetSetting_Missing(t *testing.T) {
	settings := setSetting(nil, "payroll.cycle", "monthly")

	_, ok := getSetting(settings, "payroll.cutoff")
	assert.False(t, ok)

	_, ok = getSetting(settings, "payroll.cycle.nested")
	assert.False(t, ok, "a scalar cannot be descended into")

	_, ok = getSetting(nil, "anything")
	assert.False(t, ok)
}
