package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gofurn.io/storefront/checkout"
	"gofurn.io/storefront/models"
	"gofurn.io/storefront/models/enum"
)

func newCheckoutCmd() *cobra.Command {
	var (
		delivery string
		payment  string
		term     uint64
		agree    bool

		fullName string
		line1    string
		line2    string
		city     string
		postal   string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			option := enum.DeliveryOption(delivery)
			if !option.Valid() {
				return fmt.Errorf("unknown delivery option %q (want standard, express or pickup)", delivery)
			}

			flow := svc.BeginCheckout()

			flow.Dispatch(checkout.SetDeliveryOption{Option: option})
			flow.Dispatch(checkout.SetAgreedToTerms{Agreed: agree})
			flow.Dispatch(checkout.SetBillingAddress{Address: models.Address{
				FullName:     fullName,
				AddressLine1: line1,
				AddressLine2: line2,
				City:         city,
				PostalCode:   postal,
			}})
			switch payment {
			case "full":
				flow.Dispatch(checkout.SetPaymentType{Type: enum.PaymentTypeFull})
			case "credit":
				flow.Dispatch(checkout.SetPaymentType{Type: enum.PaymentTypeCredit})
				flow.Dispatch(checkout.SetTermMonths{Months: term})
			default:
				return fmt.Errorf("unknown payment type %q (want full or credit)", payment)
			}

			pricing := flow.Pricing()
			fmt.Printf("Subtotal %.2f  Delivery %.2f  Tax %.2f  Total %.2f\n",
				pricing.Subtotal, pricing.DeliveryFee, pricing.Tax, pricing.Total)
			if pricing.MonthlyPayment > 0 {
				fmt.Printf("Monthly payment over %d months: %.2f\n", term, pricing.MonthlyPayment)
			}

			state, err := flow.Submit(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", state.FailureMessage)
			}

			if state.Status == enum.CheckoutStatusConfirmed {
				fmt.Printf("Order %s confirmed.\n", flow.OrderID())
				return nil
			}

			// Full payment: the card widget runs outside this process and
			// reports exactly one transaction reference on success.
			fmt.Printf("Order %s accepted. Complete payment of %d minor units via the card widget (key %s),\n",
				state.Widget.Reference, state.Widget.AmountMinorUnits, state.Widget.PublicKey)
			fmt.Print("then paste the transaction reference (empty to cancel): ")

			reader := bufio.NewReader(os.Stdin)
			ref, _ := reader.ReadString('\n')
			ref = strings.TrimSpace(ref)
			if ref == "" {
				flow.CancelPayment()
				fmt.Println("Payment cancelled; your cart is unchanged.")
				return nil
			}

			state, err = flow.CompletePayment(cmd.Context(), ref)
			if err != nil {
				// The order exists server-side; keep the cart so the shopper
				// does not lose it, and let them retry the confirmation.
				return fmt.Errorf("%s", state.FailureMessage)
			}
			fmt.Printf("Order %s confirmed.\n", flow.OrderID())
			return nil
		},
	}

	cmd.Flags().StringVar(&delivery, "delivery", "standard", "delivery option: standard, express or pickup")
	cmd.Flags().StringVar(&payment, "payment", "full", "payment type: full or credit")
	cmd.Flags().Uint64Var(&term, "term", 12, "credit term in months (credit only)")
	cmd.Flags().BoolVar(&agree, "agree", false, "accept the terms and conditions")
	cmd.Flags().StringVar(&fullName, "name", "", "billing full name")
	cmd.Flags().StringVar(&line1, "address1", "", "billing address line 1")
	cmd.Flags().StringVar(&line2, "address2", "", "billing address line 2")
	cmd.Flags().StringVar(&city, "city", "", "billing city")
	cmd.Flags().StringVar(&postal, "postal", "", "billing postal code")

	return cmd
}
