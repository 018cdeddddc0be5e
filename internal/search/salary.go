package search

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencyPrefix     = "S$"
	salaryNotSpecified = "Salary not specified"
)

// FormatSalary renders an annual salary range as a monthly display string.
// A nil bound is absent; zero counts as present.
func FormatSalary(minAnnual, maxAnnual *float64) string {
	switch {
	case minAnnual == nil && maxAnnual == nil:
		return salaryNotSpecified
	case minAnnual != nil && maxAnnual != nil:
		return fmt.Sprintf("%s - %s monthly", monthly(*minAnnual), monthly(*maxAnnual))
	case minAnnual != nil:
		return fmt.Sprintf("From %s monthly", monthly(*minAnnual))
	default:
		return fmt.Sprintf("Up to %s monthly", monthly(*maxAnnual))
	}
}

func monthly(annual float64) string {
	p := message.NewPrinter(language.English)
	return currencyPrefix + p.Sprintf("%.2f", annual/12)
}
