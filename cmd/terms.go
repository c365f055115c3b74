package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const termsOfService = `Terms of Service

1. Booking: All bookings are subject to availability. Provide correct contact details and pay at booking.
2. Ticket Delivery: E-tickets are sent via email/SMS after payment.
3. Cancellations & Refunds: Refunds follow organizer policy.
4. Transfers & Resale: Unauthorized resale prohibited.
5. Entry & Conduct: Follow venue rules; misconduct may lead to ejection without refund.
6. Liability: Liability limited to ticket amount paid.
7. Privacy: We collect data for booking and support.
8. Updates: Terms may be updated; continued use implies acceptance.`

func newTermsCmd(rt *runtime) *cobra.Command {
	var assumeYes, status bool
	termsCmd := &cobra.Command{
		Use:   "terms",
		Short: "Read and accept the Terms of Service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.open(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if status {
				accepted, err := rt.consent.Accepted()
				if err != nil {
					return err
				}
				if accepted {
					fmt.Fprintln(out, "Terms of Service accepted.")
				} else {
					fmt.Fprintln(out, "Terms of Service not accepted yet.")
				}
				return nil
			}

			fmt.Fprintln(out, termsOfService)
			fmt.Fprintln(out)
			if !assumeYes && !confirm("I Agree") {
				fmt.Fprintln(out, "Declined. You did not accept the Terms of Service.")
				return nil
			}
			if err := rt.consent.Accept(); err != nil {
				return err
			}
			rt.log.Info("terms of service accepted")
			fmt.Fprintln(out, "Thanks! You accepted the Terms of Service.")
			return nil
		},
	}
	termsCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "accept without asking")
	termsCmd.Flags().BoolVar(&status, "status", false, "only report whether the terms were accepted")
	return termsCmd
}
