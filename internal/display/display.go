package display

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantfold/straddlego/internal/straddle"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	savedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))
)

// ShowHeader prints the symbol banner with the spot price, historical
// volatility and next earnings date.
func ShowHeader(report *straddle.RunReport) {
	fmt.Println()
	fmt.Printf("%s $%.2f\n",
		titleStyle.Render(fmt.Sprintf("Current stock price for %s:", report.Symbol)), report.Spot)
	fmt.Printf("%s %.4f   %s %s\n",
		labelStyle.Render("HV (annualized):"), report.HV,
		labelStyle.Render("Next earnings:"), report.EarningsDate)
}

// ShowResult prints one per-expiration summary block.
func ShowResult(res straddle.Result) {
	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Expiration: %s | ATM Strike: %g | DTE: %d",
		res.Expiration.Format("2006-01-02"), res.Strike, res.DTE)))
	fmt.Printf("Call (mid): $%.2f, IV: %.2f%%, Delta: %g, Theta: %g\n",
		res.CallMid, res.CallIV*100, res.CallDelta, res.CallTheta)
	fmt.Printf("Put  (mid): $%.2f, IV: %.2f%%, Delta: %g, Theta: %g\n",
		res.PutMid, res.PutIV*100, res.PutDelta, res.PutTheta)
	fmt.Printf("Straddle Price: $%.2f, Implied Move: ±%.2f%%\n",
		res.StraddlePrice, res.ImpliedMovePct)
	fmt.Printf("Expected Range: $%.2f to $%.2f\n", res.RangeLow, res.RangeHigh)
}

// ShowSkip prints a skipped expiration with its reason.
func ShowSkip(skip straddle.Skip) {
	fmt.Println()
	fmt.Println(warnStyle.Render(fmt.Sprintf("Skipping expiration %s: %s",
		skip.Expiration.Format("2006-01-02"), skip.Reason)))
}

// ShowFatal prints a terminal error message.
func ShowFatal(msg string) {
	fmt.Println(errorStyle.Render(msg))
}

// ShowSaved prints the closing confirmation naming the ledger file.
func ShowSaved(path string, rows int) {
	fmt.Println()
	fmt.Println(savedStyle.Render(fmt.Sprintf("Results saved to %s (%d rows appended)", path, rows)))
}
