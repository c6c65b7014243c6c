package produto

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const prefixoMoeda = "R$ "

var printer = message.NewPrinter(language.English)

// FormatarMoeda formata o valor com prefixo "R$ ", separador de milhar
// e duas casas decimais: 1234.5 -> "R$ 1,234.50".
func FormatarMoeda(valor float64) string {
	return prefixoMoeda + printer.Sprintf("%.2f", valor)
}
