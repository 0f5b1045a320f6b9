package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/thenoetrevino/rolodex/internal/cli/styles"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// DealList is a set of deals in board order
type DealList []*models.Deal

func (l DealList) IDs() []string {
	ids := make([]string, len(l))
	for i, d := range l {
		ids[i] = d.ID
	}
	return ids
}

// Render prints the deals grouped under their stage
func (l DealList) Render(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "No deals found")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d deals:\n", len(l))
	for _, stage := range models.Stages {
		var rows []*models.Deal
		for _, d := range l {
			if d.Stage == stage {
				rows = append(rows, d)
			}
		}
		if len(rows) == 0 {
			continue
		}
		b.WriteString("\n" + styles.StageChip(stage) + "\n")
		for _, d := range rows {
			fmt.Fprintf(&b, "  %d. %s  %s  %s\n", d.Position+1, d.Title,
				styles.SubtitleStyle.Render(styles.Money(d.Value)),
				styles.SubtitleStyle.Render(d.ID))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DealDetail is a single deal
type DealDetail struct {
	*models.Deal
}

func (d DealDetail) Render(w io.Writer) error {
	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render(d.Title) + "  " + styles.StageChip(d.Stage) + "\n\n")
	content.WriteString(styles.Field("ID", d.ID) + "\n")
	content.WriteString(styles.Field("Value", styles.Money(d.Value)) + "\n")
	content.WriteString(styles.Field("Position", fmt.Sprintf("%d", d.Position+1)) + "\n")
	if d.ContactName != "" {
		content.WriteString(styles.Field("Contact", d.ContactName) + "\n")
	}
	if d.CloseDate != nil {
		content.WriteString(styles.Field("Close date", d.CloseDate.Format(models.DateLayout)) + "\n")
	}
	if d.Description != "" {
		content.WriteString(styles.SectionStyle.Render("Description") + "\n")
		content.WriteString(styles.Markdown(d.Description, styles.CardWidth-6) + "\n")
	}
	_, err := fmt.Fprintln(w, styles.RenderCard(strings.TrimRight(content.String(), "\n")))
	return err
}

// ContactPageView is one page of a contact listing
type ContactPageView struct {
	*models.ContactPage
}

func (p ContactPageView) IDs() []string {
	ids := make([]string, len(p.Contacts))
	for i, c := range p.Contacts {
		ids[i] = c.ID
	}
	return ids
}

func (p ContactPageView) Render(w io.Writer) error {
	if p.Total == 0 {
		_, err := fmt.Fprintln(w, "No contacts found")
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d contacts (page %d of %d):\n\n", p.Total, p.Page, p.TotalPages)
	for _, c := range p.Contacts {
		b.WriteString("  " + contactLine(c) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func contactLine(c *models.Contact) string {
	parts := []string{c.Name, "(" + string(c.Type) + ")"}
	if c.IsCandidate() {
		if c.CurrentTitle != "" {
			parts = append(parts, c.CurrentTitle)
		}
		if len(c.Skills) > 0 {
			parts = append(parts, "["+strings.Join(c.Skills, ", ")+"]")
		}
	} else if c.Company != "" {
		parts = append(parts, c.Company)
	}
	return strings.Join(parts, " ") + "  " + styles.SubtitleStyle.Render(c.ID)
}

// ContactDetail is a contact with its deals and activity log
type ContactDetail struct {
	Contact    *models.Contact    `json:"contact"`
	Deals      []*models.Deal     `json:"deals"`
	Activities []*models.Activity `json:"activities"`
}

func (d ContactDetail) GetID() string { return d.Contact.ID }

func (d ContactDetail) Render(w io.Writer) error {
	c := d.Contact
	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render(c.Name) + "  " + styles.SubtitleStyle.Render(string(c.Type)) + "\n\n")

	field := func(label, value string) {
		if value != "" {
			content.WriteString(styles.Field(label, value) + "\n")
		}
	}
	field("ID", c.ID)
	field("Email", c.Email)
	field("Phone", c.Phone)
	field("Company", c.Company)
	field("Location", c.Location)
	field("LinkedIn", c.LinkedInURL)
	if c.IsCandidate() {
		field("Title", c.CurrentTitle)
		if c.YearsExperience != nil {
			field("Experience", fmt.Sprintf("%d years", *c.YearsExperience))
		}
		field("Skills", strings.Join(c.Skills, ", "))
		if c.SalaryExpectation != nil {
			field("Salary", styles.Money(c.SalaryExpectation))
		}
		field("Remote", c.RemotePreference)
		field("Availability", c.AvailabilityStatus)
		field("Contract", c.ContractLength)
		field("Window", c.AvailabilityWindow)
	} else {
		field("Specialty", c.DesiredSpecialty)
		if c.SalaryBudgetMin != nil || c.SalaryBudgetMax != nil {
			field("Budget", styles.Money(c.SalaryBudgetMin)+" - "+styles.Money(c.SalaryBudgetMax))
		}
		field("Contract", c.DesiredContractLength)
		field("Availability", c.DesiredAvailability)
	}

	if len(d.Deals) > 0 {
		content.WriteString(styles.SectionStyle.Render("Deals") + "\n")
		for _, deal := range d.Deals {
			fmt.Fprintf(&content, "%s %s  %s\n", styles.StageChip(deal.Stage), deal.Title, styles.Money(deal.Value))
		}
	}

	content.WriteString(styles.SectionStyle.Render("Activity") + "\n")
	if len(d.Activities) == 0 {
		content.WriteString(styles.SubtitleStyle.Render("No activity yet") + "\n")
	}
	for _, a := range d.Activities {
		content.WriteString(activityHeader(a) + "\n")
		content.WriteString(styles.Markdown(a.Body, styles.CardWidth-6) + "\n")
	}

	_, err := fmt.Fprintln(w, styles.RenderCard(strings.TrimRight(content.String(), "\n")))
	return err
}

func activityHeader(a *models.Activity) string {
	return styles.LabelStyle.Render(strings.ToUpper(string(a.Type))) + " " +
		styles.SubtitleStyle.Render(a.CreatedAt.Local().Format("2006-01-02 15:04")+"  "+a.ID)
}

// ActivityList is a contact's activity log, newest first
type ActivityList []*models.Activity

func (l ActivityList) IDs() []string {
	ids := make([]string, len(l))
	for i, a := range l {
		ids[i] = a.ID
	}
	return ids
}

func (l ActivityList) Render(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "No activity found")
		return err
	}
	var b strings.Builder
	for _, a := range l {
		b.WriteString(activityHeader(a) + "\n")
		b.WriteString(styles.Markdown(a.Body, styles.CardWidth) + "\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// MatchList is the ranked candidates for a client
type MatchList []*models.Contact

func (l MatchList) IDs() []string {
	ids := make([]string, len(l))
	for i, c := range l {
		ids[i] = c.ID
	}
	return ids
}

func (l MatchList) Render(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "No matching candidates")
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d candidates:\n\n", len(l))
	for i, c := range l {
		fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, contactLine(c), styles.Money(c.SalaryExpectation))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DashboardView is the pipeline summary
type DashboardView struct {
	*models.Dashboard
}

func (d DashboardView) Render(w io.Writer) error {
	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render("Pipeline") + "\n\n")
	content.WriteString(styles.Field("Contacts", fmt.Sprintf("%d", d.TotalContacts)) + "\n")
	content.WriteString(styles.Field("Deals", fmt.Sprintf("%d (%d open)", d.TotalDeals, d.OpenDeals)) + "\n")
	value := d.PipelineValue
	content.WriteString(styles.Field("Open value", styles.Money(&value)) + "\n")
	content.WriteString(styles.SectionStyle.Render("By stage") + "\n")
	for _, stage := range models.Stages {
		fmt.Fprintf(&content, "%-12s %d\n", stage, d.DealsByStage[stage])
	}
	_, err := fmt.Fprintln(w, styles.RenderCard(strings.TrimRight(content.String(), "\n")))
	return err
}

// Deleted reports a removed row
type Deleted struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

func (d Deleted) GetID() string { return d.ID }

func (d Deleted) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s %s deleted\n", styles.SuccessStyle.Render("✓"), d.Kind, d.ID)
	return err
}

// Created reports a new or changed row and renders it with its detail view
type Created struct {
	Kind string
	Row  any
}

func (c Created) GetID() string {
	if id, ok := c.Row.(interface{ GetID() string }); ok {
		return id.GetID()
	}
	return ""
}

func (c Created) MarshalJSON() ([]byte, error) {
	return marshal(c.Row)
}

func (c Created) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s %s saved\n", styles.SuccessStyle.Render("✓"), c.Kind); err != nil {
		return err
	}
	if r, ok := c.Row.(Renderer); ok {
		return r.Render(w)
	}
	return nil
}

// Synced reports an applied position batch
type Synced struct {
	Applied int `json:"applied"`
}

func (s Synced) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %d positions saved\n", styles.SuccessStyle.Render("✓"), s.Applied)
	return err
}

// Cancelled reports a declined confirmation
type Cancelled struct{}

func (Cancelled) Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Cancelled")
	return err
}

// ActivityView is a single activity entry
type ActivityView struct {
	*models.Activity
}

func (a ActivityView) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", activityHeader(a.Activity), styles.Markdown(a.Body, styles.CardWidth))
	return err
}
