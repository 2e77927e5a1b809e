package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/diillson/cdr-billing/internal/domain/entity"
	"github.com/diillson/cdr-billing/internal/shared/types"
)

// Cores usadas nos destaques do resumo
var (
	BrightGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed    = color.New(color.FgRed, color.Bold).SprintFunc()
)

const ratioBarWidth = 40

// Console é uma implementação do ConsoleInterface sobre o pterm.
type Console struct {
	out io.Writer
}

// NewConsole cria um Console que escreve na saída padrão.
func NewConsole() *Console {
	return NewConsoleWithWriter(os.Stdout)
}

// NewConsoleWithWriter cria um Console que escreve em w.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) Print(a ...interface{})                 { fmt.Fprint(c.out, a...) }
func (c *Console) Printf(format string, a ...interface{}) { fmt.Fprintf(c.out, format, a...) }
func (c *Console) Println(a ...interface{})               { fmt.Fprintln(c.out, a...) }

func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.WithWriter(c.out).Printfln(format, a...)
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status inicia um spinner com a mensagem informada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.WithWriter(c.out).Start(message)
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

// ProgressWithTotal inicia uma barra de progresso para total passos.
func (c *Console) ProgressWithTotal(total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithWriter(c.out).
		WithTotal(total).
		WithTitle("Writing reports").
		WithShowElapsedTime(true).
		WithShowCount(true).
		Start()
	return &progressHandle{bar: bar}
}

func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

func (h *progressHandle) Stop() {
	if h.bar != nil {
		_, _ = h.bar.Stop()
	}
}

// Table acumula colunas e linhas e renderiza com o pterm.
type Table struct {
	data pterm.TableData
}

// CreateTable cria uma tabela vazia; a primeira linha guarda o cabeçalho.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{data: pterm.TableData{{}}}
}

func (t *Table) AddColumn(name string, options ...interface{}) {
	t.data[0] = append(t.data[0], name)
}

func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.data = append(t.data, row)
}

func (t *Table) Render() string {
	rendered, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(t.data).
		Srender()
	return rendered
}

// DisplayCallRatio mostra a divisão interestadual/intraestadual e a distância do safe harbor.
func (c *Console) DisplayCallRatio(split types.JurisdictionSplit) {
	if split.Interstate == 0 && split.Intrastate == 0 {
		c.LogWarning("No interstate or intrastate minutes to compare")
		return
	}

	table, _ := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Jurisdiction", "Share", ""},
		{"Interstate", fmt.Sprintf("%.2f%%", split.Interstate), ratioBar(split.Interstate, pterm.FgBlue)},
		{"Intrastate", fmt.Sprintf("%.2f%%", split.Intrastate), ratioBar(split.Intrastate, pterm.FgMagenta)},
	}).Srender()

	body := fmt.Sprintf("%s\nSafe Harbor interstate: %.1f%% (%s)",
		table, entity.SafeHarborInterstatePercent, safeHarborLabel(split.SafeHarborDelta))

	panel := pterm.DefaultBox.
		WithTitle(split.Title).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(body)
	fmt.Fprintln(c.out, "\n"+panel)
}

func safeHarborLabel(delta float64) string {
	switch {
	case math.Abs(delta) < 0.01:
		return BrightYellow("at safe harbor")
	case delta > 0:
		return BrightRed(fmt.Sprintf("%+.2f pts above safe harbor", delta))
	default:
		return BrightGreen(fmt.Sprintf("%+.2f pts below safe harbor", delta))
	}
}

func ratioBar(percent float64, fg pterm.Color) string {
	n := int(math.Round(percent / 100 * ratioBarWidth))
	if n <= 0 {
		return ""
	}
	return fg.Sprint(strings.Repeat("█", n))
}
