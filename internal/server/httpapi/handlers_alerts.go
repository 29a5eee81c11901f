package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/services"
)

type createAlertRequest struct {
	Location    *string `json:"location"`
	AlertType   *string `json:"alert_type"`
	Description *string `json:"description"`
}

func (s *HTTPServer) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.svc.Alerts.List(r.Context())
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not retrieve alerts"})
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *HTTPServer) handleGetAlert(w http.ResponseWriter, r *http.Request) {
	msgs := errorMessages{
		common.KindNotFound: "Alert not found",
		common.KindInternal: "Could not retrieve alert",
	}

	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err, msgs)
		return
	}

	alert, err := s.svc.Alerts.Get(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err, msgs)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func (s *HTTPServer) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	alert, err := s.svc.Alerts.Create(r.Context(), services.NewAlert{
		Location:    req.Location,
		AlertType:   req.AlertType,
		Description: req.Description,
	})
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not create alert"})
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}

// handleCreateTestAlert ignores the request body.
func (s *HTTPServer) handleCreateTestAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := s.svc.Alerts.CreateTestAlert(r.Context())
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not create alert"})
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}
