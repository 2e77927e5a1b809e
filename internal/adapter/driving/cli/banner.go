package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/cdr-billing/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   ____ ____  ____    ____  _ _ _ _
  / ___|  _ \|  _ \  | __ )(_) | (_)_ __   __ _
 | |   | | | | |_) | |  _ \| | | | | '_ \ / _' |
 | |___| |_| |  _ <  | |_) | | | | | | | | (_| |
  \____|____/|_| \_\ |____/|_|_|_|_|_| |_|\__, |
                                          |___/
`
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))
	fmt.Println(blue(fmt.Sprintf("CDR Billing CLI (v%s)", version.FormatVersion())))
}
