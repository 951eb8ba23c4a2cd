package entity

// Currency moneda de la compañía; DecimalPlaces fija la precisión de redondeo.
type Currency struct {
	ID            int64
	Name          string
	DecimalPlaces int32
}

// Company compañía dueña del pedido POS y de su moneda contable.
type Company struct {
	ID       int64
	Name     string
	Currency Currency
}
