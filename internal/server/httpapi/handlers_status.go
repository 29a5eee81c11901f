package httpapi

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/goccy/go-json"
)

type activeSystemsResponse struct {
	ActiveCount int                    `json:"active_count"`
	Systems     []*models.SystemStatus `json:"systems"`
}

type statusNotFoundBody struct {
	Error    string `json:"error"`
	IsActive bool   `json:"is_active"`
}

// maxDeviceIDLen matches the device_id column width.
const maxDeviceIDLen = 100

// parseStatusUpdate builds an update from the raw body fields. device_id and
// device_info are only touched when their keys are present; an explicit
// null clears them.
func parseStatusUpdate(userID int64, body map[string]json.RawMessage) (*models.SystemStatusUpdate, error) {
	raw, ok := body["is_active"]
	if !ok {
		return nil, common.NewMissingFieldsError("Missing required field: is_active", "is_active")
	}

	update := &models.SystemStatusUpdate{UserID: userID}
	if err := json.Unmarshal(raw, &update.IsActive); err != nil {
		return nil, &common.ValidationError{Message: "Invalid value for: is_active"}
	}

	if raw, ok := body["device_id"]; ok {
		var id *string
		if err := json.Unmarshal(raw, &id); err != nil || (id != nil && utf8.RuneCountInString(*id) > maxDeviceIDLen) {
			return nil, &common.ValidationError{Message: "Invalid value for: device_id"}
		}
		update.DeviceID = id
		update.SetDeviceID = true
	}

	if raw, ok := body["device_info"]; ok {
		update.DeviceInfo = []byte(raw)
		update.SetDeviceInfo = true
	}

	return update, nil
}

func (s *HTTPServer) handleUpdateSystemStatus(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := decodeJSON(r, &body); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	claims, _ := claimsFrom(r.Context())
	update, err := parseStatusUpdate(claims.UserID, body)
	if err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	status, err := s.svc.SystemStatus.Update(r.Context(), update)
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not update system status"})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *HTTPServer) handleGetSystemStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	status, err := s.svc.SystemStatus.Get(r.Context(), claims.UserID)
	if errors.Is(err, common.ErrorNotFound) {
		writeJSON(w, http.StatusNotFound, statusNotFoundBody{Error: "No system status found for user"})
		return
	}
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not retrieve system status"})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *HTTPServer) handleListActiveSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := s.svc.SystemStatus.ListActive(r.Context())
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not retrieve active systems"})
		return
	}
	if systems == nil {
		systems = []*models.SystemStatus{}
	}
	writeJSON(w, http.StatusOK, activeSystemsResponse{ActiveCount: len(systems), Systems: systems})
}
