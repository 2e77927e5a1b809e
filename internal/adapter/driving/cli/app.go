package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diillson/cdr-billing/internal/application/usecase"
	"github.com/diillson/cdr-billing/internal/shared/types"
	"github.com/diillson/cdr-billing/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd        *cobra.Command
	billingUseCase *usecase.BillingUseCase
	version        string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:   "cdr-billing",
		Short: "Telecom usage billing reports from CDR, SMS and provisioning exports",
		Long: `cdr-billing classifies call detail records into interstate, intrastate and
toll-free traffic, attributes usage to customers through the phone number
inventory and writes per-customer billing reports.`,
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "CDR Billing version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("cdr", "", "CDR CSV export (local path or s3://bucket/key)")
	flags.String("phones", "", "Phone number inventory CSV export (local path or s3://bucket/key)")
	flags.String("sms", "", "SMS log CSV export (optional)")
	flags.String("domain-stats", "", "Domain statistics workbook for seat counts (optional)")
	flags.String("master", "", "Master billing workbook for the combined CDR and department pivot (optional)")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: reports)")
	flags.StringP("report-name", "n", "", "Prefix for every report file name")
	flags.StringSliceP("report-type", "y", nil, "Report types: csv, json, pdf, xlsx (default: csv)")
	flags.Bool("timestamp", false, "Append a timestamp to every report file name")
	flags.String("aws-profile", "", "AWS profile used to fetch s3:// inputs")
	flags.String("aws-region", "", "AWS region used to fetch s3:// inputs")
	flags.Int("top", 0, "Customers shown in the console summary (default: 15)")

	app.rootCmd = rootCmd
	return app
}

// ExecuteContext runs the CLI application with ctx as the command context.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	cdrFile, _ := flags.GetString("cdr")
	phones, _ := flags.GetString("phones")
	sms, _ := flags.GetString("sms")
	domainStats, _ := flags.GetString("domain-stats")
	master, _ := flags.GetString("master")
	dir, _ := flags.GetString("dir")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	timestamp, _ := flags.GetBool("timestamp")
	awsProfile, _ := flags.GetString("aws-profile")
	awsRegion, _ := flags.GetString("aws-region")
	top, _ := flags.GetInt("top")

	// Converte para caminho absoluto
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile:     configFile,
		CDRFile:        cdrFile,
		InventoryFile:  phones,
		SMSFile:        sms,
		DomainStats:    domainStats,
		MasterWorkbook: master,
		Dir:            dir,
		ReportName:     reportName,
		ReportType:     reportType,
		Timestamp:      timestamp,
		AWSProfile:     awsProfile,
		AWSRegion:      awsRegion,
		Top:            top,
	}, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()

	ctx := cmd.Context()

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(ctx, app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	return app.billingUseCase.RunReports(ctx, cliArgs)
}

// SetBillingUseCase sets the billing use case for the CLI app.
func (app *CLIApp) SetBillingUseCase(useCase *usecase.BillingUseCase) {
	app.billingUseCase = useCase
}
