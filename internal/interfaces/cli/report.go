package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewReportCommand muestra los indicadores del panel.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show inventory value, low stock, today's sales and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.requireStaff(); err != nil {
				return err
			}
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			stats, err := rt.Container.Reports.GetStats(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "stats", err)
			}
			loc := rt.Container.Location
			return rootOpts.formatter(cmd).Success(stats, func(w io.Writer) {
				fmt.Fprintf(w, "Products:        %d\n", stats.TotalProducts)
				fmt.Fprintf(w, "Inventory value: $%s\n", stats.TotalInventoryValue.StringFixed(2))
				fmt.Fprintf(w, "Sales today:     $%s\n", stats.SalesToday.StringFixed(2))
				fmt.Fprintf(w, "Low stock:       %d\n", stats.LowStockCount)
				for _, p := range stats.LowStockList {
					fmt.Fprintf(w, "  - %s %s (stock %d, moq %d)\n", p.SKU, p.Name, p.Stock, p.MOQ)
				}
				fmt.Fprintln(w, "\nRecent transactions:")
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				for _, tx := range stats.RecentTransactions {
					fmt.Fprintf(tw, "  %s\t%s\t%s\tx%d\t$%s\t%s\n",
						tx.At().In(loc).Format(time.DateTime), tx.Type, tx.ProductName,
						tx.Quantity, tx.TotalAmount.StringFixed(2), tx.PerformedBy)
				}
				_ = tw.Flush()
			})
		},
	}
}

// NewReconcileCommand verifica que el stock coincida con la reproducción del ledger.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Replay the ledger and report products whose stock does not match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.requireStaff(); err != nil {
				return err
			}
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			out, err := rt.Container.Reports.Reconcile(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "reconcile", err)
			}
			if err := rootOpts.formatter(cmd).Success(out, func(w io.Writer) {
				for _, u := range out.Unreconcilable {
					fmt.Fprintf(w, "  ? %s %s: no opening stock, not checked\n", u.SKU, u.ProductName)
				}
				if out.Consistent {
					fmt.Fprintf(w, "Ledger consistent: %d products, %d transactions\n", out.ProductsChecked, out.TransactionsCount)
					return
				}
				fmt.Fprintf(w, "%d product(s) out of sync:\n", len(out.Discrepancies))
				for _, d := range out.Discrepancies {
					fmt.Fprintf(w, "  - %s %s: expected %d, actual %d\n", d.SKU, d.ProductName, d.ExpectedStock, d.ActualStock)
				}
			}); err != nil {
				return err
			}
			if !out.Consistent {
				return NewExitError(ExitFailure, "ledger out of sync")
			}
			return nil
		},
	}
}
