package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/rolodex/internal/app"
	"github.com/thenoetrevino/rolodex/internal/models"
	dealservice "github.com/thenoetrevino/rolodex/internal/services/deal"
)

// dealPayload is the body of deal create and update requests. Updates
// replace every editable field, so an absent value or close date clears it.
type dealPayload struct {
	Title       string  `json:"title"`
	Value       *int64  `json:"value"`
	Stage       string  `json:"stage"`
	ContactID   *string `json:"contact_id"`
	Description string  `json:"description"`
	CloseDate   string  `json:"close_date"`
}

func (p dealPayload) stage() (models.Stage, error) {
	if strings.TrimSpace(p.Stage) == "" {
		return "", nil
	}
	return models.ParseStage(p.Stage)
}

func (p dealPayload) closeDate() (*time.Time, error) {
	raw := strings.TrimSpace(p.CloseDate)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return nil, badRequest("close_date must be formatted as YYYY-MM-DD")
	}
	return &t, nil
}

func getDashboard(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		d, err := a.DashboardService.Dashboard(c.Request().Context(), session(c))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, d)
	}
}

func listDeals(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var (
			deals []*models.Deal
			err   error
		)
		// The unfiltered board goes through the view cache
		if search := c.QueryParam("search"); search != "" {
			deals, err = a.DealService.ListDeals(ctx, session(c), search)
		} else {
			deals, err = a.DealService.Board(ctx, session(c))
		}
		if err != nil {
			return err
		}
		if deals == nil {
			deals = []*models.Deal{}
		}
		return c.JSON(http.StatusOK, deals)
	}
}

func getDeal(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		d, err := a.DealService.GetDeal(c.Request().Context(), session(c), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, d)
	}
}

func createDeal(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p dealPayload
		if err := c.Bind(&p); err != nil {
			return err
		}
		stage, err := p.stage()
		if err != nil {
			return err
		}
		closeDate, err := p.closeDate()
		if err != nil {
			return err
		}

		d, err := a.DealService.CreateDeal(c.Request().Context(), session(c), dealservice.CreateDealRequest{
			Title:       p.Title,
			Value:       p.Value,
			Stage:       stage,
			ContactID:   p.ContactID,
			Description: p.Description,
			CloseDate:   closeDate,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, successResponse{Success: true, Data: d})
	}
}

func updateDeal(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p dealPayload
		if err := c.Bind(&p); err != nil {
			return err
		}
		closeDate, err := p.closeDate()
		if err != nil {
			return err
		}

		contactID := ""
		if p.ContactID != nil {
			contactID = *p.ContactID
		}
		req := dealservice.UpdateDealRequest{
			ID:             c.Param("id"),
			Title:          &p.Title,
			Value:          p.Value,
			ClearValue:     p.Value == nil,
			ContactID:      &contactID,
			Description:    &p.Description,
			CloseDate:      closeDate,
			ClearCloseDate: closeDate == nil,
		}
		if strings.TrimSpace(p.Stage) != "" {
			stage, err := models.ParseStage(p.Stage)
			if err != nil {
				return err
			}
			req.Stage = &stage
		}

		d, err := a.DealService.UpdateDeal(c.Request().Context(), session(c), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, successResponse{Success: true, Data: d})
	}
}

func deleteDeal(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := a.DealService.DeleteDeal(c.Request().Context(), session(c), c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

// syncPositions accepts the changed rows of a board drag as a JSON array
func syncPositions(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		var updates []models.PositionUpdate
		if err := c.Bind(&updates); err != nil {
			return err
		}
		if err := a.DealService.SyncPositions(c.Request().Context(), session(c), updates); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func contactDeals(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		deals, err := a.DealService.ListByContact(c.Request().Context(), session(c), c.Param("id"))
		if err != nil {
			return err
		}
		if deals == nil {
			deals = []*models.Deal{}
		}
		return c.JSON(http.StatusOK, deals)
	}
}
