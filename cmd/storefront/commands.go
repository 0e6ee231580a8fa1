package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"gofurn.io/storefront/models"
)

func newProductsCmd() *cobra.Command {
	var categoryID uint64

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter *uint64
			if cmd.Flags().Changed("category") {
				filter = &categoryID
			}
			products, err := svc.ListProducts(cmd.Context(), filter)
			if err != nil {
				return err
			}
			for _, p := range products {
				stock := "in stock"
				if !p.InStock {
					stock = "out of stock"
				}
				fmt.Printf("%-12s %-32s %10.2f  %s\n", p.ID, p.Name, p.Price, stock)
			}
			return nil
		},
	}
	list.Flags().Uint64Var(&categoryID, "category", 0, "filter by category id")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := svc.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n%s\n\nPrice: %.2f %s\n", p.Name, p.Description, p.Price, p.Currency)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the category tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := svc.CategoryTree(cmd.Context())
			if err != nil {
				return err
			}
			printCategoryTree(tree, 0)
			return nil
		},
	}
}

func printCategoryTree(nodes []*models.CategoryTree, depth int) {
	for _, node := range nodes {
		fmt.Printf("%*s%s\n", depth*2, "", node.Name)
		printCategoryTree(node.Children, depth+1)
	}
}

func newCartCmd() *cobra.Command {
	var qty uint64

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return svc.AddToCart(cmd.Context(), args[0], qty)
		},
	}
	add.Flags().Uint64Var(&qty, "qty", 1, "quantity to add")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc.RemoveFromCart(cmd.Context(), args[0])
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var quantity int64
			if _, err := fmt.Sscanf(args[1], "%d", &quantity); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			svc.SetCartQuantity(cmd.Context(), args[0], quantity)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(*cobra.Command, []string) error {
			lines := svc.CartLines()
			if len(lines) == 0 {
				fmt.Println("Cart is empty.")
				return nil
			}
			for _, line := range lines {
				fmt.Printf("%-12s %-32s %4d x %8.2f = %10.2f\n",
					line.ProductID, line.Name, line.Quantity, line.UnitPrice, line.Subtotal())
			}
			fmt.Printf("%63s %10.2f\n", "Total:", svc.CartTotal())
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc.ClearCart(cmd.Context())
			return nil
		},
	}

	cmd.AddCommand(add, remove, set, show, clear)
	return cmd
}

func newOrdersCmd() *cobra.Command {
	var limit, offset uint64

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Track orders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := svc.ListOrders(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			for _, o := range orders {
				fmt.Printf("%-24s %-12s %10.2f  %s\n",
					o.ID, o.Status, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	list.Flags().Uint64Var(&limit, "limit", 20, "page size")
	list.Flags().Uint64Var(&offset, "offset", 0, "page offset")

	show := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := svc.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Order %s (%s)\n", o.ID, o.Status)
			for _, item := range o.Items {
				fmt.Printf("  %-32s %4d x %8.2f = %10.2f\n", item.Name, item.Quantity, item.UnitPrice, item.Subtotal)
			}
			fmt.Printf("Subtotal %.2f  Delivery %.2f  Tax %.2f  Total %.2f\n",
				o.Subtotal, o.DeliveryFee, o.Tax, o.Total)
			if o.MonthlyPayment > 0 {
				fmt.Printf("Monthly payment: %.2f\n", o.MonthlyPayment)
			}
			return nil
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print live order status updates until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc.OnOrderChange(func(event *models.OrderEvent) {
				fmt.Printf("%s  order %s -> %s\n",
					event.CreatedAt.Format("15:04:05"), event.OrderID, event.Status)
			})

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt)
			<-stop
			return nil
		},
	}

	cmd.AddCommand(list, show, watch)
	return cmd
}
