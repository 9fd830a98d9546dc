package http

import (
	"net/http"

	"github.com/starkedge/timelogger-backend-go/internal/domain/alert"
	"github.com/starkedge/timelogger-backend-go/internal/handler/http/response"
)

type DailyCheckHandler interface {
	// Run triggers the daily under-logging check immediately.
	Run(w http.ResponseWriter, r *http.Request)
}

type dailyCheckHandlerImpl struct {
	alertService alert.AlertService
}

func NewDailyCheckHandler(alertService alert.AlertService) DailyCheckHandler {
	return &dailyCheckHandlerImpl{
		alertService: alertService,
	}
}

// Run handles GET and POST /daily-check
func (h *dailyCheckHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.alertService.RunDailyCheck(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily check completed successfully", result)
}
