package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/domain/repository"
	"github.com/diillson/cdr-billing/internal/domain/telephony"
	"github.com/diillson/cdr-billing/internal/shared/types"
)

// Base names of the per-report CSV files.
const (
	reportCDR            = "cdr"
	reportCallRatio      = "call_ratio"
	reportPhones         = "phones"
	reportPhonesExcluded = "phones_excl"
	reportCallerID       = "callerid"
	reportSMS            = "sms"
	reportCombined       = "cdr_combined"
	reportSeats          = "seats"
	reportPivot          = "department_pivot"
	reportBilling        = "billing_report"
)

// BillingUseCase runs every billing report for one set of inputs.
type BillingUseCase struct {
	usageRepo  repository.UsageRepository
	sheetRepo  repository.SpreadsheetRepository
	inputRepo  repository.InputRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewBillingUseCase creates a new billing use case.
func NewBillingUseCase(
	usageRepo repository.UsageRepository,
	sheetRepo repository.SpreadsheetRepository,
	inputRepo repository.InputRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *BillingUseCase {
	return &BillingUseCase{
		usageRepo:  usageRepo,
		sheetRepo:  sheetRepo,
		inputRepo:  inputRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		now:        time.Now,
	}
}

// resolvedInputs holds local paths; optional inputs are "" when absent.
type resolvedInputs struct {
	cdr, inventory, sms, domainStats, master string
}

// LoadConfig builds the effective configuration: defaults, then the config file, then flags.
func (uc *BillingUseCase) LoadConfig(args *types.CLIArgs) (types.Config, error) {
	cfg := types.DefaultConfig()
	if args.ConfigFile != "" {
		fileCfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg.Merge(fileCfg)
	}
	cfg.ApplyArgs(args)
	return cfg, cfg.Validate()
}

// RunReports executa todos os relatórios de faturamento.
func (uc *BillingUseCase) RunReports(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.LoadConfig(args)
	if err != nil {
		return err
	}

	uc.inputRepo.UseProfile(cfg.AWSProfile, cfg.AWSRegion)

	// Entradas obrigatórias são verificadas antes de qualquer processamento
	inputs, err := uc.resolveInputs(ctx, cfg)
	defer func() {
		if cerr := uc.inputRepo.Cleanup(); cerr != nil {
			uc.console.LogWarning("Failed to remove downloaded inputs: %s", cerr)
		}
	}()
	if err != nil {
		return err
	}

	if account, err := uc.inputRepo.CallerAccount(ctx); err != nil {
		uc.console.LogWarning("Could not determine AWS account for remote inputs: %s", err)
	} else if account != "" {
		uc.console.LogInfo("Remote inputs fetched with AWS account %s", account)
	}

	report, err := uc.buildReport(cfg, inputs)
	if err != nil {
		return err
	}

	uc.displaySummary(report, cfg.Top)
	uc.exportReport(report, cfg)
	return nil
}

func (uc *BillingUseCase) resolveInputs(ctx context.Context, cfg types.Config) (resolvedInputs, error) {
	var in resolvedInputs

	if cfg.CDRFile == "" {
		return in, types.ErrMissingCDRFile
	}
	if cfg.InventoryFile == "" {
		return in, types.ErrMissingInventoryFile
	}

	var err error
	if in.cdr, err = uc.inputRepo.Resolve(ctx, cfg.CDRFile); err != nil {
		return in, fmt.Errorf("CDR file %s: %w", cfg.CDRFile, err)
	}
	if in.inventory, err = uc.inputRepo.Resolve(ctx, cfg.InventoryFile); err != nil {
		return in, fmt.Errorf("phone numbers file %s: %w", cfg.InventoryFile, err)
	}

	optional := []struct {
		label    string
		location string
		dst      *string
	}{
		{"SMS file", cfg.SMSFile, &in.sms},
		{"Domain statistics file", cfg.DomainStats, &in.domainStats},
		{"Master workbook", cfg.MasterWorkbook, &in.master},
	}
	for _, o := range optional {
		if o.location == "" {
			continue
		}
		p, err := uc.inputRepo.Resolve(ctx, o.location)
		if err != nil {
			uc.console.LogWarning("%s not available, report skipped: %s", o.label, err)
			continue
		}
		*o.dst = p
	}
	return in, nil
}

// buildReport reads every available input and computes all report sections in memory.
func (uc *BillingUseCase) buildReport(cfg types.Config, in resolvedInputs) (*entity.BillingReport, error) {
	report := &entity.BillingReport{
		GeneratedAt:        uc.now(),
		VoiceRatePerMinute: cfg.Rates.Voice(),
		SMSRatePerMessage:  cfg.Rates.SMS(),
	}

	status := uc.console.Status("Loading phone number inventory...")
	inventory, err := uc.usageRepo.LoadInventory(in.inventory)
	if err != nil {
		status.Stop()
		return nil, err
	}
	customers := telephony.NewCustomerMap(inventory)
	agg := NewAggregator(customers, cfg.Rates)

	status.Update("Processing CDR file...")
	calls, err := uc.usageRepo.LoadCalls(in.cdr)
	if err != nil {
		status.Stop()
		return nil, err
	}
	status.Stop()
	uc.console.LogInfo("Loaded %d phone numbers and %d CDR rows", customers.Len(), len(calls))

	cdr := agg.AggregateCalls(slices.Values(calls))
	ratio := CallRatio(cdr)
	report.Customers = cdr.Ranked()
	report.Ratio = &ratio

	phones := CountPhones(slices.Values(inventory))
	report.BillablePhones = phones.Billable.Ranked()
	report.ExcludedPhones = phones.Excluded.Ranked()
	report.ExcludedEntries = phones.ExcludedEntries

	report.CallerIDs = CountCallerIDs(slices.Values(calls)).Ranked()

	if in.sms != "" {
		msgs, err := uc.usageRepo.LoadMessages(in.sms)
		if err != nil {
			uc.console.LogWarning("SMS report skipped: %s", err)
		} else {
			set, overall := agg.AggregateMessages(slices.Values(msgs))
			report.SMS = set.Ranked()
			report.SMSOverall = overall
		}
	}

	if in.master != "" {
		uc.buildWorkbookSections(report, agg, calls, cfg, in.master)
	}

	if in.domainStats != "" {
		res, err := uc.sheetRepo.LoadSeatStats(in.domainStats, cfg.Sheets.DomainStats)
		if err != nil {
			uc.console.LogWarning("Seat count report skipped: %s", err)
		} else {
			uc.logSheetWarnings("domain statistics", res.Warnings)
			report.Seats = CollectSeats(slices.Values(res.Records))
		}
	}

	return report, nil
}

func (uc *BillingUseCase) buildWorkbookSections(
	report *entity.BillingReport,
	agg *Aggregator,
	calls []entity.CallRecord,
	cfg types.Config,
	master string,
) {
	status := uc.console.Status("Extracting spreadsheet CDR (this may take a moment)...")
	res, err := uc.sheetRepo.LoadCallRecords(master, cfg.Sheets.CombinedCDR)
	status.Stop()
	if err != nil {
		uc.console.LogWarning("Combined CDR report skipped: %s", err)
		return
	}
	uc.logSheetWarnings("combined CDR", res.Warnings)
	uc.console.LogInfo("Extracted %d spreadsheet CDR records from sheet %d", len(res.Records), res.Sheet)

	combined := agg.AggregateCombined(slices.Values(calls), slices.Values(res.Records))
	combinedRatio := CallRatio(combined)
	report.Combined = combined.Ranked()
	report.CombinedRatio = &combinedRatio

	pivotRows, err := uc.sheetRepo.LoadDepartmentRows(master, cfg.Sheets.DepartmentPivot)
	if err != nil {
		uc.console.LogWarning("Department pivot skipped: %s", err)
		return
	}
	uc.logSheetWarnings("department pivot", pivotRows.Warnings)
	if pivot := BuildPivot(slices.Values(pivotRows.Records)); !pivot.Empty() {
		report.Pivot = pivot
	}
}

func (uc *BillingUseCase) logSheetWarnings(report string, warnings []string) {
	for _, w := range warnings {
		uc.console.LogWarning("%s: %s", report, w)
	}
}

// displaySummary exibe o resumo do faturamento no console.
func (uc *BillingUseCase) displaySummary(report *entity.BillingReport, top int) {
	if report.Ratio != nil {
		totals := report.Ratio.Totals
		uc.console.Println()
		uc.console.LogInfo("Total Calls: %d | Total Minutes: %.2f | CDR Cost: $%.4f | Billable Cost: $%.4f (@ $%g/min)",
			totals.TotalCalls, totals.TotalMinutes(), totals.TotalCost,
			totals.BillableCost(report.VoiceRatePerMinute), report.VoiceRatePerMinute)
		if totals.JurisdictionalSeconds() > 0 {
			uc.console.DisplayCallRatio(splitOf("Overall Call Ratio", *report.Ratio))
		}
	}

	if len(report.Customers) > 0 {
		uc.console.Print(uc.customerTable(report.Customers, report.VoiceRatePerMinute, top).Render())
	}

	billable, excluded := 0, 0
	for _, c := range report.BillablePhones {
		billable += c.Count
	}
	for _, c := range report.ExcludedPhones {
		excluded += c.Count
	}
	uc.console.LogInfo("Billable phones: %d, Excluded (fax/hold/unassigned): %d", billable, excluded)

	if s := report.SMSOverall; s != nil && s.TotalMessages > 0 {
		uc.console.LogInfo("SMS: %d messages (%d incoming, %d outgoing) | CDR Cost: $%.4f | Billable Cost: $%.4f (@ $%g/msg)",
			s.TotalMessages, s.IncomingMessages, s.OutgoingMessages, s.TotalCost,
			s.BillableCost(report.SMSRatePerMessage), report.SMSRatePerMessage)
	}

	if report.CombinedRatio != nil {
		totals := report.CombinedRatio.Totals
		uc.console.LogInfo("Combined CDR: %d calls | %.2f minutes | Billable Cost: $%.4f",
			totals.TotalCalls, totals.TotalMinutes(), totals.BillableCost(report.VoiceRatePerMinute))
		if totals.JurisdictionalSeconds() > 0 {
			uc.console.DisplayCallRatio(splitOf("Combined Call Ratio", *report.CombinedRatio))
		}
	}

	if report.Pivot != nil {
		uc.console.LogInfo("Department pivot: %d departments, %d billable lines, %d active users",
			len(report.Pivot.Departments()), report.Pivot.Billable(), report.Pivot.Active())
	}
	if len(report.Seats) > 0 {
		uc.console.LogInfo("Seat counts: %d customers", len(report.Seats))
	}
}

func (uc *BillingUseCase) customerTable(stats []*entity.CustomerStats, rate float64, top int) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Customer")
	table.AddColumn("Calls")
	table.AddColumn("Minutes")
	table.AddColumn("Billable")
	table.AddColumn("Interstate")
	table.AddColumn("Intrastate")

	if top > 0 && len(stats) > top {
		stats = stats[:top]
	}
	for _, s := range stats {
		inter, intra := "N/A", "N/A"
		if s.JurisdictionalSeconds() > 0 {
			inter = fmt.Sprintf("%.1f%%", s.InterstatePercent())
			intra = fmt.Sprintf("%.1f%%", s.IntrastatePercent())
		}
		table.AddRow(
			s.Name,
			pterm.Sprintf("%d", s.TotalCalls),
			fmt.Sprintf("%.1f", s.TotalMinutes()),
			fmt.Sprintf("$%.2f", s.BillableCost(rate)),
			inter,
			intra,
		)
	}
	return table
}

func splitOf(title string, r entity.CallRatio) types.JurisdictionSplit {
	return types.JurisdictionSplit{
		Title:           title,
		Interstate:      r.InterstateRatio * 100,
		Intrastate:      r.IntrastateRatio * 100,
		SafeHarborDelta: r.SafeHarborDelta(),
	}
}

type exportJob struct {
	what string
	run  func() (string, error)
}

// exportJobs lists one job per file the requested formats produce.
func (uc *BillingUseCase) exportJobs(report *entity.BillingReport, cfg types.Config) []exportJob {
	stamp := report.GeneratedAt.Format("20060102_150405")
	name := func(base string) string {
		if cfg.ReportName != "" {
			base = cfg.ReportName + "_" + base
		}
		if cfg.Timestamp {
			base += "_" + stamp
		}
		return base
	}
	dir := cfg.Dir
	repo := uc.exportRepo

	var jobs []exportJob
	add := func(what string, run func() (string, error)) {
		jobs = append(jobs, exportJob{what: what, run: run})
	}

	for _, reportType := range cfg.ReportType {
		switch reportType {
		case "csv":
			if report.Ratio != nil {
				add("CDR report", func() (string, error) {
					return repo.ExportCDRReportToCSV(report.Customers, report.VoiceRatePerMinute, name(reportCDR), dir)
				})
				add("call ratio", func() (string, error) {
					return repo.ExportCallRatioToCSV(*report.Ratio, name(reportCallRatio), dir)
				})
			}
			add("phone counts", func() (string, error) {
				return repo.ExportPhoneCountsToCSV(report.BillablePhones, name(reportPhones), dir)
			})
			if len(report.ExcludedEntries) > 0 {
				add(fmt.Sprintf("excluded phones (%d non-billable)", len(report.ExcludedEntries)), func() (string, error) {
					return repo.ExportExcludedPhonesToCSV(report.ExcludedEntries, name(reportPhonesExcluded), dir)
				})
			}
			add("CallerID report", func() (string, error) {
				return repo.ExportCallerIDReportToCSV(report.CallerIDs, name(reportCallerID), dir)
			})
			if report.SMSOverall != nil {
				add("SMS report", func() (string, error) {
					return repo.ExportSMSReportToCSV(report.SMS, report.SMSRatePerMessage, name(reportSMS), dir)
				})
			}
			if report.CombinedRatio != nil {
				add("combined CDR report", func() (string, error) {
					return repo.ExportCombinedCDRReportToCSV(report.Combined, report.VoiceRatePerMinute, name(reportCombined), dir)
				})
			}
			if report.Pivot != nil {
				add("department pivot", func() (string, error) {
					return repo.ExportDepartmentPivotToCSV(report.Pivot, name(reportPivot), dir)
				})
			}
			if len(report.Seats) > 0 {
				add("seat counts", func() (string, error) {
					return repo.ExportSeatReportToCSV(report.Seats, name(reportSeats), dir)
				})
			}
		case "json":
			add("billing report to JSON", func() (string, error) {
				return repo.ExportBillingReportToJSON(report, name(reportBilling), dir)
			})
		case "pdf":
			add("billing report to PDF", func() (string, error) {
				return repo.ExportBillingReportToPDF(report, name(reportBilling), dir)
			})
		case "xlsx":
			add("billing report to XLSX", func() (string, error) {
				return repo.ExportBillingReportToXLSX(report, name(reportBilling), dir)
			})
		}
	}
	return jobs
}

// exportReport exporta cada relatório nos formatos solicitados.
func (uc *BillingUseCase) exportReport(report *entity.BillingReport, cfg types.Config) {
	jobs := uc.exportJobs(report, cfg)
	if len(jobs) == 0 {
		return
	}

	type result struct {
		what, path string
		err        error
	}
	results := make([]result, 0, len(jobs))

	progress := uc.console.ProgressWithTotal(len(jobs))
	for _, job := range jobs {
		path, err := job.run()
		results = append(results, result{job.what, path, err})
		progress.Increment()
	}
	progress.Stop()

	for _, r := range results {
		if r.err != nil {
			uc.console.LogError("Failed to export %s: %s", r.what, r.err)
			continue
		}
		uc.console.LogSuccess("Successfully exported %s: %s", r.what, r.path)
	}
}
