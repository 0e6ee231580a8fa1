package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office operations",
	}

	inventory := &cobra.Command{
		Use:   "inventory",
		Short: "List stock levels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := svc.ListInventory(cmd.Context())
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Printf("%-12s %-32s on hand %6d  reserved %6d\n",
					item.ProductID, item.Name, item.Quantity, item.Reserved)
			}
			return nil
		},
	}

	var (
		delta  int64
		reason string
	)
	adjust := &cobra.Command{
		Use:   "adjust <product-id>",
		Short: "Adjust a product's stock level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reason == "" {
				return fmt.Errorf("a reason is required for stock adjustments")
			}
			return svc.AdjustInventory(cmd.Context(), args[0], delta, reason)
		},
	}
	adjust.Flags().Int64Var(&delta, "delta", 0, "signed quantity change")
	adjust.Flags().StringVar(&reason, "reason", "", "audit reason")

	var from, to string
	report := &cobra.Command{
		Use:   "report",
		Short: "Fetch the sales report for a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromT, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			toT, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}

			r, err := svc.SalesReport(cmd.Context(), fromT, toT)
			if err != nil {
				return err
			}
			fmt.Printf("Orders: %d  Gross: %.2f  Tax: %.2f\n", r.OrderCount, r.GrossTotal, r.TaxTotal)
			return nil
		},
	}
	report.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	report.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")

	var limit, offset uint64
	audit := &cobra.Command{
		Use:   "audit",
		Short: "List the audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := svc.AuditLog(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  %-16s %-24s %s\n",
					e.CreatedAt.Format(time.RFC3339), e.Actor, e.Action, e.Subject)
			}
			return nil
		},
	}
	audit.Flags().Uint64Var(&limit, "limit", 50, "page size")
	audit.Flags().Uint64Var(&offset, "offset", 0, "page offset")

	cmd.AddCommand(inventory, adjust, report, audit)
	return cmd
}
