package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags([]string{
		"--cdr", "s3://telco/cdr.csv",
		"--phones", "phones.csv",
		"--master", "master.xlsx",
		"-d", "out",
		"-n", "march",
		"-y", "csv,xlsx",
		"--timestamp",
		"--aws-profile", "billing",
		"--top", "5",
	}))

	args, err := app.parseArgs()
	require.NoError(t, err)

	wantDir, _ := filepath.Abs("out")
	assert.Equal(t, "s3://telco/cdr.csv", args.CDRFile)
	assert.Equal(t, "phones.csv", args.InventoryFile)
	assert.Equal(t, "master.xlsx", args.MasterWorkbook)
	assert.Equal(t, wantDir, args.Dir)
	assert.Equal(t, "march", args.ReportName)
	assert.Equal(t, []string{"csv", "xlsx"}, args.ReportType)
	assert.True(t, args.Timestamp)
	assert.Equal(t, "billing", args.AWSProfile)
	assert.Equal(t, 5, args.Top)
	assert.Empty(t, args.SMSFile)
}

func TestParseArgsDefaultsLeaveConfigInCharge(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags(nil))

	args, err := app.parseArgs()
	require.NoError(t, err)
	assert.Empty(t, args.Dir)
	assert.Empty(t, args.ReportType)
	assert.Zero(t, args.Top)
}
