package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// createAccidentRequest ignores any user_id in the body; the report belongs
// to the token holder.
type createAccidentRequest struct {
	Location          *string `json:"location" validate:"required,min=1,max=255"`
	Severity          *string `json:"severity" validate:"required,max=50"`
	Description       *string `json:"description" validate:"required"`
	Status            *string `json:"status" validate:"omitempty,max=50"`
	WeatherConditions *string `json:"weather_conditions" validate:"omitempty,max=100"`
	RoadConditions    *string `json:"road_conditions" validate:"omitempty,max=100"`
	NumberOfVehicles  *int    `json:"number_of_vehicles" validate:"omitempty,min=0"`
	InjuriesReported  *bool   `json:"injuries_reported"`
}

// pathID parses the {id} URL parameter. Non-numeric ids cannot match a row.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *HTTPServer) handleCreateAccident(w http.ResponseWriter, r *http.Request) {
	var req createAccidentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}
	if err := validateRequest(&req, "Missing required fields"); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	claims, _ := claimsFrom(r.Context())
	report, err := s.svc.Accidents.Create(r.Context(), claims.UserID, services.NewAccident{
		Location:          *req.Location,
		Description:       req.Description,
		Severity:          req.Severity,
		Status:            req.Status,
		WeatherConditions: req.WeatherConditions,
		RoadConditions:    req.RoadConditions,
		NumberOfVehicles:  req.NumberOfVehicles,
		InjuriesReported:  req.InjuriesReported,
	})
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not create accident report"})
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

func (s *HTTPServer) handleListAccidents(w http.ResponseWriter, r *http.Request) {
	reports, err := s.svc.Accidents.List(r.Context())
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not retrieve accident reports"})
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *HTTPServer) handleGetAccident(w http.ResponseWriter, r *http.Request) {
	msgs := errorMessages{
		common.KindNotFound: "Accident not found",
		common.KindInternal: "Could not retrieve accident report",
	}

	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err, msgs)
		return
	}

	report, err := s.svc.Accidents.Get(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err, msgs)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
