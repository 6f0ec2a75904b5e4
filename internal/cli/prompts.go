package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "The straddle scan runs against this underlying",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !tickerPattern.MatchString(str) {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}
