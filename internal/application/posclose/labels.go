package posclose

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
)

// Claves de traducción de las líneas sintetizadas.
const (
	msgUntaxedAmount = "%s: untaxed amount"
	msgTaxAmount     = "%s: tax"
)

var lineCatalog = newLineCatalog()

func newLineCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic("catálogo de líneas: " + err.Error())
		}
	}
	set(language.English, msgUntaxedAmount, msgUntaxedAmount)
	set(language.English, msgTaxAmount, msgTaxAmount)
	set(language.Spanish, msgUntaxedAmount, "%s: base imponible")
	set(language.Spanish, msgTaxAmount, "%s: impuesto")
	return b
}

// LineLabels nombra las líneas base/impuesto en el idioma configurado (implementa accounting.LineNamer).
type LineLabels struct {
	tag language.Tag
}

// NewLineLabels elige el idioma soportado más cercano a lang ("es", "es-CO", "en"...); por defecto inglés.
func NewLineLabels(lang string) *LineLabels {
	tag, err := language.Parse(lang)
	if err != nil {
		return &LineLabels{tag: language.English}
	}
	supported := lineCatalog.Languages()
	_, idx, conf := language.NewMatcher(supported).Match(tag)
	if conf == language.No {
		return &LineLabels{tag: language.English}
	}
	return &LineLabels{tag: supported[idx]}
}

// Language idioma efectivo de las etiquetas.
func (l *LineLabels) Language() language.Tag { return l.tag }

// UntaxedName nombre de la línea de base imponible.
func (l *LineLabels) UntaxedName(tax entity.Tax) string {
	return l.printer().Sprintf(msgUntaxedAmount, tax.Name)
}

// TaxName nombre de la línea de impuesto.
func (l *LineLabels) TaxName(tax entity.Tax) string {
	return l.printer().Sprintf(msgTaxAmount, tax.Name)
}

// Un printer por llamada: message.Printer no declara ser seguro para uso concurrente.
func (l *LineLabels) printer() *message.Printer {
	return message.NewPrinter(l.tag, message.Catalog(lineCatalog))
}
