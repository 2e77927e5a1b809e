package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigMergeAndApplyArgs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{
		CDRFile:    "file.csv",
		ReportType: []string{"json"},
		Top:        30,
		Rates:      Rates{SMSPerMessage: Rate(0.01)},
		Sheets:     Sheets{CombinedCDR: 4},
	})
	cfg.ApplyArgs(&CLIArgs{CDRFile: "flag.csv", Timestamp: true})

	assert.Equal(t, "flag.csv", cfg.CDRFile)
	assert.Equal(t, []string{"json"}, cfg.ReportType)
	assert.Equal(t, 30, cfg.Top)
	assert.True(t, cfg.Timestamp)
	assert.Equal(t, DefaultReportDir, cfg.Dir)
	assert.Equal(t, DefaultVoiceRatePerMinute, cfg.Rates.Voice())
	assert.Equal(t, 0.01, cfg.Rates.SMS())
	assert.Equal(t, 4, cfg.Sheets.CombinedCDR)
	assert.Equal(t, 1, cfg.Sheets.DomainStats)

	cfg.Merge(nil)
	cfg.ApplyArgs(nil)
	assert.Equal(t, "flag.csv", cfg.CDRFile)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	bad := DefaultConfig()
	bad.Rates.VoicePerMinute = Rate(-0.1)
	assert.ErrorIs(t, bad.Validate(), ErrNegativeRate)

	bad = DefaultConfig()
	bad.ReportType = []string{"csv", "docx"}
	assert.ErrorContains(t, bad.Validate(), "docx")

	bad = DefaultConfig()
	bad.Sheets.DepartmentPivot = []int{10, -1}
	assert.Error(t, bad.Validate())
}

func TestConfigMergeAcceptsZeroRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{Rates: Rates{SMSPerMessage: Rate(0)}})

	assert.Zero(t, cfg.Rates.SMS())
	assert.Equal(t, DefaultVoiceRatePerMinute, cfg.Rates.Voice())
	assert.NoError(t, cfg.Validate())

	var unset Rates
	assert.Zero(t, unset.Voice())
}
