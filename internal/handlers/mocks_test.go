package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// MockRoomService is a mock implementation of RoomService for testing
type MockRoomService struct{ mock.Mock }

func (m *MockRoomService) List(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Room)
	return v, args.Error(1)
}

func (m *MockRoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Room)
	return v, args.Error(1)
}

func (m *MockRoomService) Create(ctx context.Context, room models.Room) (*models.Room, error) {
	args := m.Called(ctx, room)
	v, _ := args.Get(0).(*models.Room)
	return v, args.Error(1)
}

func (m *MockRoomService) Update(ctx context.Context, id int64, patch models.RoomPatch) (*models.Room, error) {
	args := m.Called(ctx, id, patch)
	v, _ := args.Get(0).(*models.Room)
	return v, args.Error(1)
}

func (m *MockRoomService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockTenantService is a mock implementation of TenantService for testing
type MockTenantService struct{ mock.Mock }

func (m *MockTenantService) ListActive(ctx context.Context) ([]models.TenantDetails, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.TenantDetails)
	return v, args.Error(1)
}

func (m *MockTenantService) Get(ctx context.Context, id int64) (*models.TenantDetails, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.TenantDetails)
	return v, args.Error(1)
}

func (m *MockTenantService) GetByUserID(ctx context.Context, userID int64) (*models.TenantDetails, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*models.TenantDetails)
	return v, args.Error(1)
}

func (m *MockTenantService) Create(ctx context.Context, in services.CreateTenantInput) (*models.Tenant, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*models.Tenant)
	return v, args.Error(1)
}

func (m *MockTenantService) Update(ctx context.Context, id int64, patch models.TenantPatch) (*models.Tenant, error) {
	args := m.Called(ctx, id, patch)
	v, _ := args.Get(0).(*models.Tenant)
	return v, args.Error(1)
}

func (m *MockTenantService) Remove(ctx context.Context, id int64) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Tenant)
	return v, args.Error(1)
}

// MockMeterService is a mock implementation of MeterService for testing
type MockMeterService struct{ mock.Mock }

func (m *MockMeterService) ListByRoom(ctx context.Context, roomID int64) ([]models.MeterReading, error) {
	args := m.Called(ctx, roomID)
	v, _ := args.Get(0).([]models.MeterReading)
	return v, args.Error(1)
}

func (m *MockMeterService) Upsert(ctx context.Context, in services.MeterReadingInput) (*models.MeterReading, bool, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*models.MeterReading)
	return v, args.Bool(1), args.Error(2)
}

// MockBillService is a mock implementation of BillService for testing
type MockBillService struct{ mock.Mock }

func (m *MockBillService) Generate(ctx context.Context, in services.GenerateBillInput) (*models.Bill, bool, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*models.Bill)
	return v, args.Bool(1), args.Error(2)
}

func (m *MockBillService) Get(ctx context.Context, id int64) (*models.Bill, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Bill)
	return v, args.Error(1)
}

func (m *MockBillService) List(ctx context.Context) ([]models.BillSummary, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.BillSummary)
	return v, args.Error(1)
}

func (m *MockBillService) ListByTenant(ctx context.Context, tenantID int64) ([]models.Bill, error) {
	args := m.Called(ctx, tenantID)
	v, _ := args.Get(0).([]models.Bill)
	return v, args.Error(1)
}

func (m *MockBillService) Current(ctx context.Context, tenantID int64) (*models.Bill, error) {
	args := m.Called(ctx, tenantID)
	v, _ := args.Get(0).(*models.Bill)
	return v, args.Error(1)
}

func (m *MockBillService) UpdateStatus(ctx context.Context, id int64, status models.BillStatus) (*models.Bill, error) {
	args := m.Called(ctx, id, status)
	v, _ := args.Get(0).(*models.Bill)
	return v, args.Error(1)
}

// MockPaymentService is a mock implementation of PaymentService for testing
type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) Record(ctx context.Context, in services.RecordPaymentInput) (*models.PaymentResult, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*models.PaymentResult)
	return v, args.Error(1)
}

func (m *MockPaymentService) History(ctx context.Context, billID int64) ([]models.Payment, error) {
	args := m.Called(ctx, billID)
	v, _ := args.Get(0).([]models.Payment)
	return v, args.Error(1)
}

// MockReportService is a mock implementation of ReportService for testing
type MockReportService struct{ mock.Mock }

func (m *MockReportService) Income(ctx context.Context, year int) ([]models.MonthlyIncome, error) {
	args := m.Called(ctx, year)
	v, _ := args.Get(0).([]models.MonthlyIncome)
	return v, args.Error(1)
}

func (m *MockReportService) UnpaidBills(ctx context.Context) ([]models.UnpaidBill, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.UnpaidBill)
	return v, args.Error(1)
}

func (m *MockReportService) UtilityUsage(ctx context.Context, year int) ([]models.UtilityUsage, error) {
	args := m.Called(ctx, year)
	v, _ := args.Get(0).([]models.UtilityUsage)
	return v, args.Error(1)
}

func (m *MockReportService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*models.DashboardStats)
	return v, args.Error(1)
}

// MockAuthService is a mock implementation of AuthService for testing
type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	v, _ := args.Get(0).(*services.LoginResult)
	return v, args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, session auth.Session) (*models.User, error) {
	args := m.Called(ctx, session)
	v, _ := args.Get(0).(*models.User)
	return v, args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	return m.Called(ctx, name, email, password).Error(0)
}

// MockAnnouncementService is a mock implementation of AnnouncementService for testing
type MockAnnouncementService struct{ mock.Mock }

func (m *MockAnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Announcement)
	return v, args.Error(1)
}

func (m *MockAnnouncementService) Get(ctx context.Context, id int64) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Announcement)
	return v, args.Error(1)
}

func (m *MockAnnouncementService) Create(ctx context.Context, title, content string) (*models.Announcement, error) {
	args := m.Called(ctx, title, content)
	v, _ := args.Get(0).(*models.Announcement)
	return v, args.Error(1)
}

func (m *MockAnnouncementService) Update(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	args := m.Called(ctx, id, patch)
	v, _ := args.Get(0).(*models.Announcement)
	return v, args.Error(1)
}

func (m *MockAnnouncementService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
