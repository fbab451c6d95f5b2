package dashboard

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/carpark/internal/client/models"
	"github.com/dmitrijs2005/carpark/internal/client/view"
)

func (c *Controller) Park(ctx context.Context, plate string) error {
	c.mu.Lock()
	c.page.ParkPlate = plate
	c.mu.Unlock()

	plate = strings.TrimSpace(plate)
	if plate == "" {
		return c.fail(ctx, "park", invalid("License plate required"), "")
	}

	s, err := c.api.Park(ctx, plate)
	if err != nil {
		return c.fail(ctx, "park", err, "Failed to park car")
	}

	c.banner.Info("Car parked")
	c.mu.Lock()
	c.page.ParkPlate = ""
	c.render(s)
	c.mu.Unlock()
	return nil
}

// OpenRemoveModal opens the remove form with spot pre-filled and empty
// overrides.
func (c *Controller) OpenRemoveModal(spot string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Remove = view.RemoveForm{Open: true, Spot: spot}
	c.amountTouched = false
}

func (c *Controller) CloseRemoveModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Remove.Open = false
}

// InputRemoveHours updates the hours override and, until the amount has been
// touched, recomputes the amount from the current rate.
func (c *Controller) InputRemoveHours(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Remove.Hours = v
	if c.amountTouched {
		return
	}
	hours, ok := parseLeadingFloat(v)
	if amount := hours * c.currentRate; ok && hours >= 0 && c.currentRate > 0 && isFinite(amount) {
		c.page.Remove.Amount = fmt.Sprintf("%.2f", amount)
	} else {
		c.page.Remove.Amount = ""
	}
}

// InputRemoveAmount sets the amount override and stops auto-calculation for
// the rest of this modal session.
func (c *Controller) InputRemoveAmount(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Remove.Amount = v
	c.amountTouched = true
}

func (c *Controller) FocusRemoveAmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.amountTouched = true
}

func (c *Controller) AmountTouched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.amountTouched
}

func (c *Controller) SubmitRemove(ctx context.Context) error {
	c.mu.Lock()
	form := c.page.Remove
	c.mu.Unlock()

	req, err := buildRemoveRequest(form)
	if err != nil {
		return c.fail(ctx, "remove", err, "")
	}

	s, err := c.api.Remove(ctx, req)
	if err != nil {
		return c.fail(ctx, "remove", err, "Failed to remove car")
	}

	c.banner.Info("Car removed")
	c.mu.Lock()
	c.page.Remove.Open = false
	c.render(s)
	c.mu.Unlock()
	return nil
}

func buildRemoveRequest(form view.RemoveForm) (models.RemoveRequest, error) {
	spot, ok := parseInteger(form.Spot)
	if !ok {
		return models.RemoveRequest{}, invalid("Spot number required")
	}
	req := models.RemoveRequest{Spot: spot}

	if v := strings.TrimSpace(form.Hours); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil || !isFinite(h) {
			return models.RemoveRequest{}, invalid("Hours must be a number")
		}
		req.HoursOverride = &h
	}
	if v := strings.TrimSpace(form.Amount); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil || !isFinite(a) {
			return models.RemoveRequest{}, invalid("Amount must be a number")
		}
		req.AmountOverride = &a
	}
	return req, nil
}

// parseInteger accepts integral decimal text such as "5" or "5.0".
func parseInteger(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// parseLeadingFloat reads the longest finite numeric prefix of v, so "2h" is 2.
func parseLeadingFloat(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	for end := len(v); end > 0; end-- {
		if f, err := strconv.ParseFloat(v[:end], 64); err == nil && isFinite(f) {
			return f, true
		}
	}
	return 0, false
}

// OpenCommentModal binds the comment form to spot, which must be one of the
// parked cars of the last snapshot.
func (c *Controller) OpenCommentModal(ctx context.Context, spot string) error {
	c.mu.Lock()
	car, ok := c.state.FindCar(spot)
	if ok {
		plate := car.Plate
		if plate == "" {
			plate = "No registration"
		}
		c.commentSpot = car.Spot
		c.commentBound = true
		c.page.Comment = view.CommentForm{
			Open:  true,
			Label: fmt.Sprintf("Spot %d - %s", car.Spot, plate),
			Text:  car.Comments,
		}
	}
	c.mu.Unlock()

	if !ok {
		return c.fail(ctx, "comment", invalid("Unable to find that car"), "")
	}
	return nil
}

func (c *Controller) CloseCommentModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCommentModal()
}

func (c *Controller) closeCommentModal() {
	c.page.Comment = view.CommentForm{}
	c.commentBound = false
	c.commentSpot = 0
}

func (c *Controller) InputComment(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Comment.Text = text
}

// SubmitComment replaces the comments of the bound spot with the full text.
func (c *Controller) SubmitComment(ctx context.Context) error {
	c.mu.Lock()
	spot, bound, text := c.commentSpot, c.commentBound, c.page.Comment.Text
	c.mu.Unlock()

	if !bound {
		return c.fail(ctx, "comment", invalid("Spot not selected"), "")
	}

	s, err := c.api.UpdateComments(ctx, spot, text)
	if err != nil {
		return c.fail(ctx, "comment", err, "Failed to save comments")
	}

	c.banner.Info("Comments saved")
	c.mu.Lock()
	c.closeCommentModal()
	c.render(s)
	c.mu.Unlock()
	return nil
}

// Search filters the parked cars of the last snapshot by plate. No request
// is made.
func (c *Controller) Search(ctx context.Context, query string) error {
	c.mu.Lock()
	if c.state == nil {
		c.mu.Unlock()
		return c.fail(ctx, "search", invalid("State not loaded yet"), "")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		view.RenderSearchMessage(c.page, view.SearchPlaceholder)
	} else {
		view.RenderSearchHits(c.page, c.state.SearchPlates(query))
	}
	c.mu.Unlock()
	return nil
}
