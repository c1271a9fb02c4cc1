package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// MeterHandler handles meter reading HTTP requests.
type MeterHandler struct {
	service services.MeterService
}

// NewMeterHandler creates a new MeterHandler instance.
func NewMeterHandler(service services.MeterService) *MeterHandler {
	return &MeterHandler{service: service}
}

// MeterReadingRequest is the body of POST /meter-readings. Omitted inputs
// keep the stored values of an existing reading; zero is a value.
type MeterReadingRequest struct {
	PreviousReading         *decimal.Decimal `json:"previous_reading"`
	CurrentReading          *decimal.Decimal `json:"current_reading"`
	RatePerKwh              *decimal.Decimal `json:"rate_per_kwh"`
	WaterNumberOfPeople     *int             `json:"water_number_of_people"`
	WaterFeePerHead         *decimal.Decimal `json:"water_fee_per_head"`
	InternetNumberOfDevices *int             `json:"internet_number_of_devices"`
	InternetFeePerDevice    *decimal.Decimal `json:"internet_fee_per_device"`
	RoomID                  int64            `json:"room_id" binding:"required"`
	Month                   int              `json:"month" binding:"required"`
	Year                    int              `json:"year" binding:"required"`
}

// ListByRoom handles GET /meter-readings/room/:roomId.
func (h *MeterHandler) ListByRoom(c *gin.Context) {
	roomID, ok := idParam(c, "roomId")
	if !ok {
		return
	}

	readings, err := h.service.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		writeServiceError(c, err, "Failed to list meter readings")
		return
	}
	c.JSON(http.StatusOK, readings)
}

// Upsert handles POST /meter-readings. Responds 201 when the period's
// reading was created and 200 when it was merged into an existing one.
func (h *MeterHandler) Upsert(c *gin.Context) {
	var req MeterReadingRequest
	if !bindJSON(c, &req) {
		return
	}

	reading, created, err := h.service.Upsert(c.Request.Context(), services.MeterReadingInput{
		RoomID: req.RoomID,
		Month:  req.Month,
		Year:   req.Year,
		Patch: models.MeterReadingPatch{
			PreviousReading:         req.PreviousReading,
			CurrentReading:          req.CurrentReading,
			RatePerKwh:              req.RatePerKwh,
			WaterNumberOfPeople:     req.WaterNumberOfPeople,
			WaterFeePerHead:         req.WaterFeePerHead,
			InternetNumberOfDevices: req.InternetNumberOfDevices,
			InternetFeePerDevice:    req.InternetFeePerDevice,
		},
	})
	if err != nil {
		writeServiceError(c, err, "Failed to save meter reading")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, reading)
}
