package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-close-by-tax/internal/application/posclose"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/accounting"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/internal/infrastructure/catalogfile"
	"github.com/jhoicas/pos-close-by-tax/pkg/logger"
)

type options struct {
	catalog   string
	companyID int64
	lang      string
	in        string
	out       string
	orderRef  string
	verbose   bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "groupbytax",
		Short: "Agrupa por impuesto las líneas del asiento de cierre de sesión POS",
		Long: `Lee los valores del asiento (JSON con grouped_data), consolida las líneas de
venta e impuesto de cada impuesto en un par base/impuesto y escribe el resultado.

Ejemplo:
  groupbytax --catalog catalog.yaml --company 1 --in vals.json
  cat vals.json | groupbytax --catalog catalog.yaml --company 1 --lang es`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, stdin, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.catalog, "catalog", "catalog.yaml", "archivo YAML con impuestos y compañías")
	f.Int64Var(&opts.companyID, "company", 0, "ID de la compañía del pedido")
	f.StringVar(&opts.lang, "lang", "en", "idioma de los nombres de línea sintetizados (en, es)")
	f.StringVar(&opts.in, "in", "-", "archivo JSON de entrada (- = stdin)")
	f.StringVar(&opts.out, "out", "-", "archivo JSON de salida (- = stdout)")
	f.StringVar(&opts.orderRef, "order-ref", "", "referencia del pedido para los logs")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "logs de depuración en stderr")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func run(cmd *cobra.Command, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	if opts.companyID <= 0 {
		return fmt.Errorf("--company debe ser mayor que cero")
	}

	log := logger.NewNop()
	if opts.verbose {
		log = logger.New(logger.Config{Env: "development", Level: "debug", Output: stderr})
	}

	cat, err := catalogfile.Load(opts.catalog)
	if err != nil {
		return err
	}

	raw, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	var vals entity.MoveVals
	if err := json.Unmarshal(raw, &vals); err != nil {
		return fmt.Errorf("leer valores del asiento: %w", err)
	}

	grouper := accounting.NewTaxGrouper(cat.Taxes(), cat.Companies(), posclose.NewLineLabels(opts.lang))
	uc := posclose.NewPrepareMoveUseCase(grouper, log)
	res, err := uc.GroupMoveVals(cmd.Context(), opts.companyID, opts.orderRef, vals)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res.Vals, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar resultado: %w", err)
	}
	out = append(out, '\n')
	return writeOutput(opts.out, stdout, out)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir entrada: %w", err)
	}
	return b, nil
}

func writeOutput(path string, stdout io.Writer, b []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("escribir salida: %w", err)
	}
	return nil
}
