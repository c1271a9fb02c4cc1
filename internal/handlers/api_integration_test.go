package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/room4rent/internal/database/dbtest"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// setupIntegrationRouter wires the real repositories and services against
// a containerised database.
func setupIntegrationRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	db := dbtest.New(t)
	log := logger.Nop()
	tokens := newTestTokens()

	users := repository.NewUserRepository(db.Database)
	rooms := repository.NewRoomRepository(db.Database)
	tenants := repository.NewTenantRepository(db.Database)
	readings := repository.NewMeterReadingRepository(db.Database)
	bills := repository.NewBillRepository(db.Database)
	payments := repository.NewPaymentRepository(db.Database)

	authService := services.NewAuthService(users, tenants, tokens, log)
	require.NoError(t, authService.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "admin-pass"))

	api := API{
		Auth:          NewAuthHandler(authService),
		Rooms:         NewRoomHandler(services.NewRoomService(rooms, log)),
		Tenants:       NewTenantHandler(services.NewTenantService(tenants, rooms, log)),
		Meters:        NewMeterHandler(services.NewMeterService(readings, rooms, log)),
		Bills:         NewBillHandler(services.NewBillService(bills, tenants, readings, log), services.NewPaymentService(payments, bills, log)),
		Reports:       NewReportHandler(services.NewReportService(repository.NewReportRepository(db.Database), rooms, log)),
		Announcements: NewAnnouncementHandler(services.NewAnnouncementService(repository.NewAnnouncementRepository(db.Database), log)),
	}

	router := newTestRouter()
	api.RegisterRoutes(router.Group("/api/v1"), tokens)

	w := performRequest(router, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@example.com","password":"admin-pass"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login services.LoginResult
	decodeJSON(t, w, &login)

	return router, "Bearer " + login.Token
}

func TestAPI_BillingLifecycle(t *testing.T) {
	router, admin := setupIntegrationRouter(t)
	as := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		return performRequest(router, method, path, body, "Authorization", admin)
	}

	w := as(http.MethodPost, "/api/v1/rooms", `{"room_name":"Room 101","base_rent":5000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var room models.Room
	decodeJSON(t, w, &room)

	w = as(http.MethodPost, "/api/v1/tenants", fmt.Sprintf(
		`{"name":"Tenant One","email":"one@example.com","password":"secret1","room_id":%d,"move_in_date":"2025-01-01"}`, room.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tenant models.Tenant
	decodeJSON(t, w, &tenant)

	w = as(http.MethodPost, "/api/v1/meter-readings", fmt.Sprintf(
		`{"room_id":%d,"month":1,"year":2025,"previous_reading":1000,"current_reading":1100,"rate_per_kwh":8,
		  "water_number_of_people":3,"water_fee_per_head":75,"internet_number_of_devices":2,"internet_fee_per_device":100}`, room.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = as(http.MethodPost, "/api/v1/bills/generate", fmt.Sprintf(
		`{"tenant_id":%d,"month":1,"year":2025,"due_date":"2025-01-31"}`, tenant.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var generated GenerateBillResponse
	decodeJSON(t, w, &generated)
	require.NotNil(t, generated.Bill)
	assert.True(t, generated.Bill.TotalAmount.Equal(dec("6225")), generated.Bill.TotalAmount.String())
	assert.Equal(t, models.BillStatusUnpaid, generated.Bill.Status)

	steps := []struct {
		amount string
		status models.BillStatus
	}{
		{"4000", models.BillStatusPartiallyPaid},
		{"2225", models.BillStatusPaid},
	}
	for _, step := range steps {
		w = as(http.MethodPost, "/api/v1/bills/payments", fmt.Sprintf(
			`{"bill_id":%d,"amount_paid":%s,"payment_method":"cash"}`, generated.Bill.ID, step.amount))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var result models.PaymentResult
		decodeJSON(t, w, &result)
		assert.Equal(t, step.status, result.BillStatus)
	}

	w = as(http.MethodGet, fmt.Sprintf("/api/v1/bills/%d/payments", generated.Bill.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.Payment
	decodeJSON(t, w, &history)
	assert.Len(t, history, 2)

	w = as(http.MethodGet, "/api/v1/reports/income?year=2025", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var income []models.MonthlyIncome
	decodeJSON(t, w, &income)
	require.Len(t, income, 12)
	assert.True(t, income[0].PaidAmount.Equal(dec("6225")), income[0].PaidAmount.String())
	assert.Equal(t, 1, income[0].PaidCount)

	w = as(http.MethodGet, "/api/v1/reports/unpaid-bills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
