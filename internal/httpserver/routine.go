package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

const routinePath = "/routine"

type RoutineHTTP struct {
	Svc *service.RoutineService
}

func (h *RoutineHTTP) Page(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	day, err := h.Svc.Day(ctx, userID)
	if err != nil {
		return err
	}
	return render(c, "routine", "Routine", day)
}

func (h *RoutineHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "routine.create_item")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if _, err := h.Svc.CreateItem(ctx, userID, c.FormValue("name"), c.FormValue("timeOfDay")); err != nil {
		return fail(c, l, "create_routine_item_error", routinePath, err, false)
	}
	return back(c, routinePath)
}

func (h *RoutineHTTP) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "routine.deactivate")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Deactivate(ctx, userID, formUUID(c, "routineItemId")); err != nil {
		return fail(c, l, "deactivate_routine_item_error", routinePath, err, false)
	}
	return back(c, routinePath)
}

// Toggle stores the done state the form asks for, which the page computed from what it showed.
func (h *RoutineHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "routine.toggle")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	done := formValue(c, "done") == "true"
	if err := h.Svc.SetDone(ctx, userID, formUUID(c, "routineItemId"), c.FormValue("logDate"), done); err != nil {
		return fail(c, l, "toggle_routine_error", routinePath, err, false)
	}
	return back(c, routinePath)
}
