// Package catalogfile carga impuestos y compañías desde un archivo YAML para usar el
// agrupador sin base de datos (CLI, pruebas, entornos de demostración).
//
// Formato:
//
//	companies:
//	  - id: 1
//	    name: Tienda Centro
//	    currency: {id: 8, name: COP, decimal_places: 2}
//	taxes:
//	  - id: 10
//	    name: IVA 19%
//	    amount: 19
//	    amount_type: percent
package catalogfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/pos-close-by-tax/internal/domain"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/repository"
)

var (
	_ repository.TaxRepository     = (*TaxRepo)(nil)
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
)

type fileFormat struct {
	Companies []companyEntry `yaml:"companies"`
	Taxes     []taxEntry     `yaml:"taxes"`
}

type companyEntry struct {
	ID       int64         `yaml:"id"`
	Name     string        `yaml:"name"`
	Currency currencyEntry `yaml:"currency"`
}

type currencyEntry struct {
	ID            int64  `yaml:"id"`
	Name          string `yaml:"name"`
	DecimalPlaces int32  `yaml:"decimal_places"`
}

type taxEntry struct {
	ID         int64       `yaml:"id"`
	Name       string      `yaml:"name"`
	Amount     yamlDecimal `yaml:"amount"`
	AmountType string      `yaml:"amount_type"`
}

// yamlDecimal acepta `19`, `19.5` o `"19.5"` sin pasar por float64.
type yamlDecimal struct {
	decimal.Decimal
}

func (d *yamlDecimal) UnmarshalYAML(n *yaml.Node) error {
	v, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("línea %d: monto %q: %w", n.Line, n.Value, err)
	}
	d.Decimal = v
	return nil
}

// Catalog maestros en memoria, de solo lectura tras la carga (seguro para uso concurrente).
type Catalog struct {
	taxes     map[int64]entity.Tax
	companies map[int64]entity.Company
}

// Load lee el catálogo desde un archivo YAML.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse lee y valida el catálogo. IDs duplicados o en cero y precisiones negativas
// se rechazan con domain.ErrInvalidInput.
func Parse(r io.Reader) (*Catalog, error) {
	var ff fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ff); err != nil && err != io.EOF {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	c := &Catalog{
		taxes:     make(map[int64]entity.Tax, len(ff.Taxes)),
		companies: make(map[int64]entity.Company, len(ff.Companies)),
	}
	for _, t := range ff.Taxes {
		if t.ID == 0 || t.Name == "" {
			return nil, fmt.Errorf("impuesto sin id o nombre: %w", domain.ErrInvalidInput)
		}
		if _, dup := c.taxes[t.ID]; dup {
			return nil, fmt.Errorf("impuesto %d duplicado: %w", t.ID, domain.ErrInvalidInput)
		}
		amountType := t.AmountType
		if amountType == "" {
			amountType = entity.TaxAmountPercent
		}
		c.taxes[t.ID] = entity.Tax{ID: t.ID, Name: t.Name, Amount: t.Amount.Decimal, AmountType: amountType}
	}
	for _, co := range ff.Companies {
		if co.ID == 0 {
			return nil, fmt.Errorf("compañía sin id: %w", domain.ErrInvalidInput)
		}
		if _, dup := c.companies[co.ID]; dup {
			return nil, fmt.Errorf("compañía %d duplicada: %w", co.ID, domain.ErrInvalidInput)
		}
		if co.Currency.DecimalPlaces < 0 {
			return nil, fmt.Errorf("compañía %d: decimal_places negativo: %w", co.ID, domain.ErrInvalidInput)
		}
		c.companies[co.ID] = entity.Company{
			ID:   co.ID,
			Name: co.Name,
			Currency: entity.Currency{
				ID:            co.Currency.ID,
				Name:          co.Currency.Name,
				DecimalPlaces: co.Currency.DecimalPlaces,
			},
		}
	}
	return c, nil
}

// Taxes repositorio de impuestos respaldado por el catálogo.
func (c *Catalog) Taxes() *TaxRepo { return &TaxRepo{c: c} }

// Companies repositorio de compañías respaldado por el catálogo.
func (c *Catalog) Companies() *CompanyRepo { return &CompanyRepo{c: c} }

// TaxRepo implementación de repository.TaxRepository sobre el catálogo.
type TaxRepo struct {
	c *Catalog
}

// GetByID devuelve una copia del impuesto.
func (r *TaxRepo) GetByID(_ context.Context, id int64) (*entity.Tax, error) {
	t, ok := r.c.taxes[id]
	if !ok {
		return nil, fmt.Errorf("catálogo: impuesto %d: %w", id, domain.ErrNotFound)
	}
	return &t, nil
}

// CompanyRepo implementación de repository.CompanyRepository sobre el catálogo.
type CompanyRepo struct {
	c *Catalog
}

// GetByID devuelve una copia de la compañía.
func (r *CompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	co, ok := r.c.companies[id]
	if !ok {
		return nil, fmt.Errorf("catálogo: compañía %d: %w", id, domain.ErrNotFound)
	}
	return &co, nil
}
