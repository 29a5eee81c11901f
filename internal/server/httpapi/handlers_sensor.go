package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/services"
	"github.com/goccy/go-json"
)

type sensorDataRequest struct {
	Latitude          *float64        `json:"latitude"`
	Longitude         *float64        `json:"longitude"`
	Max30102HeartRate *float64        `json:"max30102_heart_rate"`
	Max30102SpO2      *float64        `json:"max30102_spo2"`
	AlcoholLevel      *float64        `json:"alcohol_level"`
	OtherData         json.RawMessage `json:"other_data"`
}

func (s *HTTPServer) handleRecordSensorData(w http.ResponseWriter, r *http.Request) {
	var req sensorDataRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondErr(w, r, err, nil)
		return
	}

	claims, _ := claimsFrom(r.Context())
	data, err := s.svc.SensorData.Record(r.Context(), claims.UserID, services.NewSensorSample{
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Max30102HeartRate: req.Max30102HeartRate,
		Max30102SpO2:      req.Max30102SpO2,
		AlcoholLevel:      req.AlcoholLevel,
		OtherData:         []byte(req.OtherData),
	})
	if err != nil {
		s.respondErr(w, r, err, errorMessages{common.KindInternal: "Could not save sensor data"})
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

func (s *HTTPServer) handleLatestSensorData(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	data, err := s.svc.SensorData.Latest(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, r, err, errorMessages{
			common.KindNotFound: "No sensor data found for user",
			common.KindInternal: "Could not retrieve sensor data",
		})
		return
	}
	writeJSON(w, http.StatusOK, data)
}
