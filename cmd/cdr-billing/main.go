package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/cdr-billing/internal/adapter/driven/config"
	"github.com/diillson/cdr-billing/internal/adapter/driven/export"
	"github.com/diillson/cdr-billing/internal/adapter/driven/storage"
	"github.com/diillson/cdr-billing/internal/adapter/driven/usage"
	"github.com/diillson/cdr-billing/internal/adapter/driven/workbook"
	"github.com/diillson/cdr-billing/internal/adapter/driving/cli"
	"github.com/diillson/cdr-billing/internal/application/usecase"
	"github.com/diillson/cdr-billing/pkg/console"
	"github.com/diillson/cdr-billing/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	usageRepo := usage.NewCSVRepository()
	sheetRepo := workbook.NewSpreadsheetRepository()
	inputRepo := storage.NewInputRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	billingUseCase := usecase.NewBillingUseCase(
		usageRepo,
		sheetRepo,
		inputRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetBillingUseCase(billingUseCase)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Executa o aplicativo
	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
