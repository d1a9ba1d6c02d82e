package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/dccampos/secretaria/core/attendance"
)

const qrSize = 256

type attendanceApi struct {
	mgr *attendance.Manager
}

// registerAttendanceAPI mounts the live check-in display surface. The
// endpoints are public: the classroom screen polls them unauthenticated.
func registerAttendanceAPI(g *echo.Group, deps ServerDeps) {
	api := attendanceApi{mgr: deps.AttendanceMgr}

	ag := g.Group("/attendance")
	ag.GET("/display", api.display)
	ag.GET("/qr.png", api.qr)
}

// display returns the current token, payload and countdown. While no token is
// live the response still carries the error/loading state so the screen is
// never silently blank.
func (api *attendanceApi) display(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.mgr.Snapshot())
}

func (api *attendanceApi) qr(ctx echo.Context) error {
	d := api.mgr.Snapshot()
	if !d.Live {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no live check-in token")
	}

	png, err := qrcode.Encode(d.CheckInURL, qrcode.Medium, qrSize)
	if err != nil {
		return errors.Wrap(err, "encoding QR code")
	}
	return ctx.Blob(http.StatusOK, "image/png", png)
}
