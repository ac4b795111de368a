package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/export"
)

// ExportOptions flags de export.
type ExportOptions struct {
	PDFPath  string
	XLSXPath string
}

// NewExportCommand escribe el reporte PDF y/o el ledger XLSX a disco.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stats report (PDF) and/or the ledger workbook (XLSX)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.PDFPath == "" && opts.XLSXPath == "" {
				return NewExitError(ExitCommandError, "at least one of --pdf or --xlsx is required")
			}
			if err := rootOpts.requireStaff(); err != nil {
				return err
			}
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			written := map[string]int{}
			if opts.PDFPath != "" {
				b, _, err := rt.Container.Exports.StatsPDF(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "generate pdf", err)
				}
				if err := os.WriteFile(opts.PDFPath, b, 0o644); err != nil {
					return WrapExitError(ExitCommandError, "write pdf", err)
				}
				written[opts.PDFPath] = len(b)
			}
			if opts.XLSXPath != "" {
				b, _, err := rt.Container.Exports.LedgerXLSX(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "generate xlsx", err)
				}
				if err := os.WriteFile(opts.XLSXPath, b, 0o644); err != nil {
					return WrapExitError(ExitCommandError, "write xlsx", err)
				}
				written[opts.XLSXPath] = len(b)
			}
			return rootOpts.formatter(cmd).Success(written, func(w io.Writer) {
				for path, n := range written {
					fmt.Fprintf(w, "wrote %s (%d bytes)\n", path, n)
				}
			})
		},
	}
	cmd.Flags().StringVar(&opts.PDFPath, "pdf", "", "path of the PDF report")
	cmd.Flags().StringVar(&opts.XLSXPath, "xlsx", "", "path of the XLSX ledger")
	return cmd
}

// NewImportCommand carga productos desde una planilla XLSX (solo admin).
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog.xlsx>",
		Short: "Create or update products from an XLSX workbook (Catalog sheet)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Role != entity.RoleAdmin {
				return NewExitError(ExitCommandError, "import requires --role admin")
			}
			file, err := os.Open(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "open file", err)
			}
			defer file.Close()

			rows, issues, err := export.ReadCatalogXLSX(file)
			if err != nil {
				return WrapExitError(ExitCommandError, "read workbook", err)
			}
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.Container.Catalog.Import(cmd.Context(), rows)
			if err != nil {
				return WrapExitError(ExitCommandError, "import", err)
			}
			for _, is := range issues {
				res.Failed = append(res.Failed, dto.ImportRowError{Row: is.Row, Reason: is.Reason})
			}
			if err := rootOpts.formatter(cmd).Success(res, func(w io.Writer) {
				fmt.Fprintf(w, "created %d, updated %d, failed %d\n", res.Created, res.Updated, len(res.Failed))
				for _, f := range res.Failed {
					fmt.Fprintf(w, "  row %d %s: %s\n", f.Row, f.SKU, f.Reason)
				}
			}); err != nil {
				return err
			}
			if len(res.Failed) > 0 {
				return NewExitError(ExitFailure, "some rows were not imported")
			}
			return nil
		},
	}
}
