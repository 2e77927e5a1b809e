package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	CDRFile        string
	InventoryFile  string
	SMSFile        string
	DomainStats    string
	MasterWorkbook string
	Dir            string
	ReportName     string
	ReportType     []string
	Timestamp      bool
	AWSProfile     string
	AWSRegion      string
	Top            int
}
