package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/rolodex/internal/app"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/services/activity"
	contactservice "github.com/thenoetrevino/rolodex/internal/services/contact"
)

// contactPayload is the body of contact create and update requests
type contactPayload struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	LinkedInURL string `json:"linkedin_url"`

	CurrentTitle       string   `json:"current_title"`
	YearsExperience    *int     `json:"years_experience"`
	Skills             []string `json:"skills"`
	SalaryExpectation  *int64   `json:"salary_expectation"`
	RemotePreference   string   `json:"remote_preference"`
	AvailabilityStatus string   `json:"availability_status"`
	ContractLength     string   `json:"contract_length"`
	AvailabilityWindow string   `json:"availability_window"`

	DesiredSpecialty      string `json:"desired_specialty"`
	SalaryBudgetMin       *int64 `json:"salary_budget_min"`
	SalaryBudgetMax       *int64 `json:"salary_budget_max"`
	DesiredContractLength string `json:"desired_contract_length"`
	DesiredAvailability   string `json:"desired_availability"`
}

func (p contactPayload) input() contactservice.Input {
	return contactservice.Input{
		Name:                  p.Name,
		Type:                  models.ContactType(strings.ToLower(strings.TrimSpace(p.Type))),
		Email:                 p.Email,
		Phone:                 p.Phone,
		Company:               p.Company,
		Location:              p.Location,
		LinkedInURL:           p.LinkedInURL,
		CurrentTitle:          p.CurrentTitle,
		YearsExperience:       p.YearsExperience,
		Skills:                p.Skills,
		SalaryExpectation:     p.SalaryExpectation,
		RemotePreference:      p.RemotePreference,
		AvailabilityStatus:    p.AvailabilityStatus,
		ContractLength:        p.ContractLength,
		AvailabilityWindow:    p.AvailabilityWindow,
		DesiredSpecialty:      p.DesiredSpecialty,
		SalaryBudgetMin:       p.SalaryBudgetMin,
		SalaryBudgetMax:       p.SalaryBudgetMax,
		DesiredContractLength: p.DesiredContractLength,
		DesiredAvailability:   p.DesiredAvailability,
	}
}

type activityPayload struct {
	Type string `json:"type"`
	Body string `json:"body"`
}

func listContacts(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := models.ContactFilter{
			Type:      models.ContactType(strings.ToLower(c.QueryParam("type"))),
			Search:    c.QueryParam("search"),
			Specialty: c.QueryParam("specialty"),
		}
		if raw := c.QueryParam("page"); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil {
				return badRequest("page must be a number")
			}
			filter.Page = page
		}

		page, err := a.ContactService.ListContacts(c.Request().Context(), session(c), filter)
		if err != nil {
			return err
		}
		if page.Contacts == nil {
			page.Contacts = []*models.Contact{}
		}
		return c.JSON(http.StatusOK, page)
	}
}

func getContact(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		contact, err := a.ContactService.GetContact(c.Request().Context(), session(c), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, contact)
	}
}

func createContact(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p contactPayload
		if err := c.Bind(&p); err != nil {
			return err
		}
		contact, err := a.ContactService.CreateContact(c.Request().Context(), session(c), p.input())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, successResponse{Success: true, Data: contact})
	}
}

func updateContact(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p contactPayload
		if err := c.Bind(&p); err != nil {
			return err
		}
		contact, err := a.ContactService.UpdateContact(c.Request().Context(), session(c), c.Param("id"), p.input())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, successResponse{Success: true, Data: contact})
	}
}

func deleteContact(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := a.ContactService.DeleteContact(c.Request().Context(), session(c), c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func contactMatches(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		matches, err := a.ContactService.MatchCandidates(c.Request().Context(), session(c), c.Param("id"))
		if err != nil {
			return err
		}
		if matches == nil {
			matches = []*models.Contact{}
		}
		return c.JSON(http.StatusOK, matches)
	}
}

// freeMatch searches candidates without a stored client:
// /api/matches?specialty=go&min=100000&max=150000&limit=3
func freeMatch(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := contactservice.MatchRequest{Specialty: c.QueryParam("specialty")}
		var err error
		if req.BudgetMin, err = optionalInt64(c, "min"); err != nil {
			return err
		}
		if req.BudgetMax, err = optionalInt64(c, "max"); err != nil {
			return err
		}
		if raw := c.QueryParam("limit"); raw != "" {
			if req.Limit, err = strconv.Atoi(raw); err != nil {
				return badRequest("limit must be a number")
			}
		}

		matches, err := a.ContactService.Match(c.Request().Context(), session(c), req)
		if err != nil {
			return err
		}
		if matches == nil {
			matches = []*models.Contact{}
		}
		return c.JSON(http.StatusOK, matches)
	}
}

func listActivities(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		activities, err := a.ActivityService.ListByContact(c.Request().Context(), session(c), c.Param("id"))
		if err != nil {
			return err
		}
		if activities == nil {
			activities = []*models.Activity{}
		}
		return c.JSON(http.StatusOK, activities)
	}
}

func createActivity(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p activityPayload
		if err := c.Bind(&p); err != nil {
			return err
		}
		act, err := a.ActivityService.CreateActivity(c.Request().Context(), session(c), activity.CreateActivityRequest{
			ContactID: c.Param("id"),
			Type:      models.ActivityType(strings.ToLower(strings.TrimSpace(p.Type))),
			Body:      p.Body,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, successResponse{Success: true, Data: act})
	}
}

func deleteActivity(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := a.ActivityService.DeleteActivity(c.Request().Context(), session(c), c.Param("activityID"), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func optionalInt64(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, badRequest(name + " must be a number")
	}
	return &v, nil
}
