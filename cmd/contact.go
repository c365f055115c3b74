package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"tickethub-cli/contact"
	"tickethub-cli/model"
)

const submissionDateLayout = "1/2/2006, 3:04:05 PM"

var contactFields = []struct {
	name  string
	label string
}{
	{"Name", "Your Name"},
	{"Email", "Email"},
	{"Phone", "Phone (10 digits)"},
	{"Subject", "Subject"},
	{"Message", "Message"},
}

func newContactCmd(rt *runtime) *cobra.Command {
	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "Send and manage contact form submissions",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Fill in the contact form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.open(); err != nil {
				return err
			}
			submission, err := promptSubmission(contact.NewValidator())
			if err != nil {
				return err
			}
			submission.Date = time.Now().Format(submissionDateLayout)
			if err := rt.contacts.Add(submission); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Thank you! Your message has been saved locally. We will get back to you soon.")
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show saved submissions, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.open(); err != nil {
				return err
			}
			subs, err := rt.contacts.List()
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No submissions yet.")
				return nil
			}
			renderContacts(cmd.OutOrStdout(), subs)
			return nil
		},
	}

	var assumeYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete one submission by its number in the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil || position < 1 {
				return errors.Newf("%q is not a submission number", args[0])
			}
			if err := rt.open(); err != nil {
				return err
			}
			if !assumeYes && !confirm(fmt.Sprintf("Delete submission #%d", position)) {
				return nil
			}
			removed, err := rt.contacts.DeleteAt(position - 1)
			if err != nil {
				return err
			}
			if !removed {
				return errors.Newf("no submission #%d", position)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every submission",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.open(); err != nil {
				return err
			}
			if !assumeYes && !confirm("Clear all submissions? This cannot be undone") {
				return nil
			}
			if err := rt.contacts.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All submissions removed.")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	contactCmd.AddCommand(addCmd, listCmd, deleteCmd, clearCmd)
	return contactCmd
}

func promptSubmission(v *contact.Validator) (model.ContactSubmission, error) {
	values := map[string]string{}
	for _, field := range contactFields {
		name := field.name
		prompt := promptui.Prompt{
			Label: field.label,
			Validate: func(input string) error {
				return v.ValidateField(name, input)
			},
		}
		value, err := prompt.Run()
		if err != nil {
			return model.ContactSubmission{}, errors.Wrap(err, "contact form")
		}
		values[name] = value
	}

	submission := contact.Normalize(model.ContactSubmission{
		Name:    values["Name"],
		Email:   values["Email"],
		Phone:   values["Phone"],
		Subject: values["Subject"],
		Message: values["Message"],
	})
	if err := v.Validate(submission); err != nil {
		return model.ContactSubmission{}, err
	}
	return submission, nil
}

func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
