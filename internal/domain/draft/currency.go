package draft

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frenchPrinter = message.NewPrinter(language.French)

// FormatCurrency renders amount with French digit grouping and no decimals.
// No currency symbol is attached.
func FormatCurrency(amount decimal.Decimal) string {
	return frenchPrinter.Sprintf("%d", amount.Round(0).IntPart())
}
