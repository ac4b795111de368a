package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/application/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// NewProductsCommand lista el catálogo.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog with current stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			list, err := rt.Container.Catalog.ListProducts(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list products", err)
			}
			return rootOpts.formatter(cmd).Success(list, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "SKU\tNAME\tCATEGORY\tPRICE\tMOQ\tSTOCK\t")
				for _, p := range list {
					low := ""
					if p.IsLowStock() {
						low = "LOW"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
						p.SKU, p.Name, p.Category, p.Price.StringFixed(2), p.MOQ, p.Stock, low)
				}
				_ = tw.Flush()
			})
		},
	}
}

// NewScanCommand registra una venta de mostrador por cada SKU escaneado.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <sku>...",
		Short: "Record one offline sale per scanned SKU (pickup, cash)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.requireStaff(); err != nil {
				return err
			}
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			f := rootOpts.formatter(cmd)
			results := make([]*dto.TransactionResult, 0, len(args))
			failed := 0
			for _, sku := range args {
				res, err := rt.Container.Ledger.ScanSale(cmd.Context(), sku, rootOpts.actor())
				if err != nil {
					return WrapExitError(ExitCommandError, "scan "+sku, err)
				}
				f.VerboseLog("scan %s: %s", sku, res.Message)
				if !res.Success {
					failed++
				}
				results = append(results, res)
			}
			if err := f.Success(results, func(w io.Writer) {
				for i, res := range results {
					printResult(w, args[i], res)
				}
			}); err != nil {
				return err
			}
			if failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scans rejected", failed, len(args)))
			}
			return nil
		},
	}
}

// NewRestockCommand repone stock de un producto identificado por SKU.
func NewRestockCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restock <sku> <quantity>",
		Short: "Add stock to a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.requireStaff(); err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("quantity %q is not an integer", args[1]))
			}
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			p, err := rt.Container.Catalog.FindBySKU(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "find sku", err)
			}
			var res *dto.TransactionResult
			if p == nil {
				res = &dto.TransactionResult{Code: dto.CodeNotFound, Message: inventory.MsgSKUNotFound}
			} else {
				res, err = rt.Container.Ledger.Restock(cmd.Context(), p.ID, qty, rootOpts.actor())
				if err != nil {
					return WrapExitError(ExitCommandError, "restock", err)
				}
			}
			if err := rootOpts.formatter(cmd).Success(res, func(w io.Writer) {
				printResult(w, args[0], res)
			}); err != nil {
				return err
			}
			if !res.Success {
				return NewExitError(ExitFailure, res.Message)
			}
			return nil
		},
	}
}

func printResult(w io.Writer, label string, res *dto.TransactionResult) {
	if !res.Success {
		fmt.Fprintf(w, "✗ %s: %s\n", label, res.Message)
		return
	}
	tx := res.Transaction
	fmt.Fprintf(w, "✓ %s: %s x%d %s $%s (stock %d)\n",
		label, tx.ProductName, tx.Quantity, describeType(tx.Type), tx.TotalAmount.StringFixed(2), *res.NewStock)
}

func describeType(t entity.TransactionType) string {
	switch t {
	case entity.TransactionOnlineOrder:
		return "online order"
	case entity.TransactionOfflineSale:
		return "sale"
	case entity.TransactionRestock:
		return "restock"
	}
	return string(t)
}
