package posclose_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/jhoicas/pos-close-by-tax/internal/application/posclose"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
)

func TestLineLabels_Idiomas(t *testing.T) {
	tax := entity.Tax{ID: 1, Name: "IVA 19%"}
	cases := []struct {
		lang, untaxed, tax string
	}{
		{"en", "IVA 19%: untaxed amount", "IVA 19%: tax"},
		{"es", "IVA 19%: base imponible", "IVA 19%: impuesto"},
		{"es-CO", "IVA 19%: base imponible", "IVA 19%: impuesto"},
		{"", "IVA 19%: untaxed amount", "IVA 19%: tax"},
		{"no-es-un-idioma!", "IVA 19%: untaxed amount", "IVA 19%: tax"},
	}
	for _, tc := range cases {
		t.Run(tc.lang, func(t *testing.T) {
			l := posclose.NewLineLabels(tc.lang)
			assert.Equal(t, tc.untaxed, l.UntaxedName(tax))
			assert.Equal(t, tc.tax, l.TaxName(tax))
		})
	}
}

func TestLineLabels_IdiomaNoSoportadoCaeEnIngles(t *testing.T) {
	l := posclose.NewLineLabels("ja")
	assert.Equal(t, language.English, l.Language())
}

func TestLineLabels_UsoConcurrente(t *testing.T) {
	l := posclose.NewLineLabels("es")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "INC: impuesto", l.TaxName(entity.Tax{Name: "INC"}))
		}()
	}
	wg.Wait()
}
