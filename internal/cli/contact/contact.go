// Package contact implements the candidate and client commands
package contact

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
	contactservice "github.com/thenoetrevino/rolodex/internal/services/contact"
)

// ContactCmd returns the contact parent command
func ContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage candidates and clients",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// addContactFlags registers every editable contact field
func addContactFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name or company name")
	cmd.Flags().String("type", "", "Contact type: candidate or client")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("company", "", "Company")
	cmd.Flags().String("location", "", "Location")
	cmd.Flags().String("linkedin", "", "LinkedIn profile URL")

	// Candidate profile
	cmd.Flags().String("title", "", "Current job title")
	cmd.Flags().Int("years", 0, "Years of experience")
	cmd.Flags().StringSlice("skills", nil, "Skills (comma separated or repeated)")
	cmd.Flags().Int64("salary", 0, "Salary expectation")
	cmd.Flags().String("remote", "", "Remote preference: remote, hybrid, onsite, flexible")
	cmd.Flags().String("availability", "", "Availability: actively_looking, open, not_looking")
	cmd.Flags().String("contract-length", "", "Preferred contract length")
	cmd.Flags().String("availability-window", "", "When the candidate can start")

	// Client needs
	cmd.Flags().String("specialty", "", "Specialty the client is hiring for")
	cmd.Flags().Int64("budget-min", 0, "Salary budget minimum")
	cmd.Flags().Int64("budget-max", 0, "Salary budget maximum")
	cmd.Flags().String("desired-contract-length", "", "Contract length the client offers")
	cmd.Flags().String("desired-availability", "", "When the client needs someone")
}

// applyFlags overlays the flags the user set onto in
func applyFlags(args *handler.Arguments, in *contactservice.Input) error {
	text := map[string]*string{
		"name":                    &in.Name,
		"email":                   &in.Email,
		"phone":                   &in.Phone,
		"company":                 &in.Company,
		"location":                &in.Location,
		"linkedin":                &in.LinkedInURL,
		"title":                   &in.CurrentTitle,
		"remote":                  &in.RemotePreference,
		"availability":            &in.AvailabilityStatus,
		"contract-length":         &in.ContractLength,
		"availability-window":     &in.AvailabilityWindow,
		"specialty":               &in.DesiredSpecialty,
		"desired-contract-length": &in.DesiredContractLength,
		"desired-availability":    &in.DesiredAvailability,
	}
	for flag, dst := range text {
		if args.Changed(flag) {
			*dst = args.ParseStringOptional(flag)
		}
	}

	if args.Changed("type") {
		in.Type = models.ContactType(strings.ToLower(strings.TrimSpace(args.ParseStringOptional("type"))))
	}
	if args.Changed("skills") {
		in.Skills = args.ParseStringSlice("skills")
	}

	var err error
	if args.Changed("years") {
		if in.YearsExperience, err = args.ParseIntOptional("years"); err != nil {
			return err
		}
	}
	numbers := map[string]**int64{
		"salary":     &in.SalaryExpectation,
		"budget-min": &in.SalaryBudgetMin,
		"budget-max": &in.SalaryBudgetMax,
	}
	for flag, dst := range numbers {
		if !args.Changed(flag) {
			continue
		}
		if *dst, err = args.ParseInt64Optional(flag); err != nil {
			return err
		}
	}
	return nil
}
