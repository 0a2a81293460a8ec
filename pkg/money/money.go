// Package money formatea importes para los textos del bot según el idioma configurado.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter imprime importes con separadores localizados y dos decimales.
type Formatter struct {
	p        *message.Printer
	currency string
}

// NewFormatter construye el formateador para el tag BCP 47 dado (ej. "ru", "es", "en").
// Un tag inválido cae a inglés.
func NewFormatter(lang, currency string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{p: message.NewPrinter(tag), currency: currency}
}

// Format devuelve el importe con la moneda al final, ej. "1,234.50 KZT".
func (f *Formatter) Format(amount decimal.Decimal) string {
	s := f.p.Sprintf("%.2f", amount.Round(2).InexactFloat64())
	if f.currency == "" {
		return s
	}
	return s + " " + f.currency
}
