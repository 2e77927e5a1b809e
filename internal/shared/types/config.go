package types

import (
	"fmt"
	"slices"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	CDRFile        string   `json:"cdr_file" yaml:"cdr_file" toml:"cdr_file"`
	InventoryFile  string   `json:"inventory_file" yaml:"inventory_file" toml:"inventory_file"`
	SMSFile        string   `json:"sms_file" yaml:"sms_file" toml:"sms_file"`
	DomainStats    string   `json:"domain_stats" yaml:"domain_stats" toml:"domain_stats"`
	MasterWorkbook string   `json:"master_workbook" yaml:"master_workbook" toml:"master_workbook"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir"`
	ReportName     string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Timestamp      bool     `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	AWSProfile     string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion      string   `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
	Top            int      `json:"top" yaml:"top" toml:"top"`

	Rates  Rates  `json:"rates" yaml:"rates" toml:"rates"`
	Sheets Sheets `json:"sheets" yaml:"sheets" toml:"sheets"`
}

// Rates are the billing constants applied to usage. A nil rate was not set, so an
// explicit 0 in a config file (free SMS, say) still overrides the default.
type Rates struct {
	VoicePerMinute *float64 `json:"voice_per_minute" yaml:"voice_per_minute" toml:"voice_per_minute"`
	SMSPerMessage  *float64 `json:"sms_per_message" yaml:"sms_per_message" toml:"sms_per_message"`
}

// Rate returns a rate value for Rates literals.
func Rate(v float64) *float64 { return &v }

// Voice returns the per-minute voice rate, 0 when unset.
func (r Rates) Voice() float64 { return rateValue(r.VoicePerMinute) }

// SMS returns the per-message SMS rate, 0 when unset.
func (r Rates) SMS() float64 { return rateValue(r.SMSPerMessage) }

func rateValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Sheets are the worksheet indexes (sheet<N>.xml) each spreadsheet report reads.
type Sheets struct {
	CombinedCDR     int   `json:"combined_cdr" yaml:"combined_cdr" toml:"combined_cdr"`
	DomainStats     int   `json:"domain_stats" yaml:"domain_stats" toml:"domain_stats"`
	DepartmentPivot []int `json:"department_pivot" yaml:"department_pivot" toml:"department_pivot"`
}

const (
	DefaultVoiceRatePerMinute = 0.005
	DefaultSMSRatePerMessage  = 0.005
	DefaultReportDir          = "reports"
	DefaultTop                = 15
)

// DefaultConfig returns the configuration used when neither a file nor flags say otherwise.
func DefaultConfig() Config {
	return Config{
		Dir:        DefaultReportDir,
		ReportType: []string{"csv"},
		Top:        DefaultTop,
		Rates: Rates{
			VoicePerMinute: Rate(DefaultVoiceRatePerMinute),
			SMSPerMessage:  Rate(DefaultSMSRatePerMessage),
		},
		Sheets: Sheets{
			CombinedCDR:     26,
			DomainStats:     1,
			DepartmentPivot: []int{10, 11},
		},
	}
}

// Merge overlays the fields file sets onto c: non-zero values, and rates present in the file.
func (c *Config) Merge(file *Config) {
	if file == nil {
		return
	}
	setString(&c.CDRFile, file.CDRFile)
	setString(&c.InventoryFile, file.InventoryFile)
	setString(&c.SMSFile, file.SMSFile)
	setString(&c.DomainStats, file.DomainStats)
	setString(&c.MasterWorkbook, file.MasterWorkbook)
	setString(&c.Dir, file.Dir)
	setString(&c.ReportName, file.ReportName)
	setString(&c.AWSProfile, file.AWSProfile)
	setString(&c.AWSRegion, file.AWSRegion)
	if len(file.ReportType) > 0 {
		c.ReportType = file.ReportType
	}
	if file.Timestamp {
		c.Timestamp = true
	}
	if file.Top > 0 {
		c.Top = file.Top
	}
	if file.Rates.VoicePerMinute != nil {
		c.Rates.VoicePerMinute = Rate(*file.Rates.VoicePerMinute)
	}
	if file.Rates.SMSPerMessage != nil {
		c.Rates.SMSPerMessage = Rate(*file.Rates.SMSPerMessage)
	}
	if file.Sheets.CombinedCDR > 0 {
		c.Sheets.CombinedCDR = file.Sheets.CombinedCDR
	}
	if file.Sheets.DomainStats > 0 {
		c.Sheets.DomainStats = file.Sheets.DomainStats
	}
	if len(file.Sheets.DepartmentPivot) > 0 {
		c.Sheets.DepartmentPivot = file.Sheets.DepartmentPivot
	}
}

// ApplyArgs overlays explicitly given command-line values onto c.
func (c *Config) ApplyArgs(args *CLIArgs) {
	if args == nil {
		return
	}
	setString(&c.CDRFile, args.CDRFile)
	setString(&c.InventoryFile, args.InventoryFile)
	setString(&c.SMSFile, args.SMSFile)
	setString(&c.DomainStats, args.DomainStats)
	setString(&c.MasterWorkbook, args.MasterWorkbook)
	setString(&c.Dir, args.Dir)
	setString(&c.ReportName, args.ReportName)
	setString(&c.AWSProfile, args.AWSProfile)
	setString(&c.AWSRegion, args.AWSRegion)
	if len(args.ReportType) > 0 {
		c.ReportType = args.ReportType
	}
	if args.Timestamp {
		c.Timestamp = true
	}
	if args.Top > 0 {
		c.Top = args.Top
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ReportTypes are the accepted export formats.
var ReportTypes = []string{"csv", "json", "pdf", "xlsx"}

// Validate rejects values no run could use. A zero rate is valid and bills nothing.
func (c *Config) Validate() error {
	if c.Rates.Voice() < 0 || c.Rates.SMS() < 0 {
		return ErrNegativeRate
	}
	if c.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", c.Top)
	}
	for _, rt := range c.ReportType {
		if !slices.Contains(ReportTypes, rt) {
			return fmt.Errorf("unknown report type %q, expected one of %v", rt, ReportTypes)
		}
	}
	for _, idx := range append([]int{c.Sheets.CombinedCDR, c.Sheets.DomainStats}, c.Sheets.DepartmentPivot...) {
		if idx < 0 {
			return fmt.Errorf("sheet index must not be negative, got %d", idx)
		}
	}
	return nil
}
