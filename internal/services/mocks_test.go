package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// MockRoomRepository is a mock implementation of RoomRepository for testing
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) List(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]models.Room)
	return rooms, args.Error(1)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*models.Room)
	return room, args.Error(1)
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	if args.Error(0) == nil {
		room.ID = 1
	}
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room models.Room) (*models.Room, error) {
	args := m.Called(ctx, room)
	updated, _ := args.Get(0).(*models.Room)
	return updated, args.Error(1)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepository) CountTenants(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRoomRepository) CountByStatus(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockTenantRepository is a mock implementation of TenantRepository for testing
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) ListActive(ctx context.Context) ([]models.TenantDetails, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]models.TenantDetails)
	return tenants, args.Error(1)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id int64) (*models.TenantDetails, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*models.TenantDetails)
	return tenant, args.Error(1)
}

func (m *MockTenantRepository) FindActiveByUserID(ctx context.Context, userID int64) (*models.TenantDetails, error) {
	args := m.Called(ctx, userID)
	tenant, _ := args.Get(0).(*models.TenantDetails)
	return tenant, args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, t models.NewTenant) (*models.Tenant, error) {
	args := m.Called(ctx, t)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, t models.Tenant) (*models.Tenant, error) {
	args := m.Called(ctx, t)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantRepository) MoveOut(ctx context.Context, id int64, date models.Date) (*models.Tenant, error) {
	args := m.Called(ctx, id, date)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

// MockBillRepository is a mock implementation of BillRepository for testing
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Upsert(ctx context.Context, bill models.Bill) (*models.Bill, bool, error) {
	args := m.Called(ctx, bill)
	saved, _ := args.Get(0).(*models.Bill)
	return saved, args.Bool(1), args.Error(2)
}

func (m *MockBillRepository) FindByID(ctx context.Context, id int64) (*models.Bill, error) {
	args := m.Called(ctx, id)
	bill, _ := args.Get(0).(*models.Bill)
	return bill, args.Error(1)
}

func (m *MockBillRepository) FindByPeriod(ctx context.Context, tenantID int64, month, year int) (*models.Bill, error) {
	args := m.Called(ctx, tenantID, month, year)
	bill, _ := args.Get(0).(*models.Bill)
	return bill, args.Error(1)
}

func (m *MockBillRepository) ListSummaries(ctx context.Context) ([]models.BillSummary, error) {
	args := m.Called(ctx)
	bills, _ := args.Get(0).([]models.BillSummary)
	return bills, args.Error(1)
}

func (m *MockBillRepository) ListByTenant(ctx context.Context, tenantID int64) ([]models.Bill, error) {
	args := m.Called(ctx, tenantID)
	bills, _ := args.Get(0).([]models.Bill)
	return bills, args.Error(1)
}

func (m *MockBillRepository) UpdateStatus(ctx context.Context, id int64, status models.BillStatus) (*models.Bill, error) {
	args := m.Called(ctx, id, status)
	bill, _ := args.Get(0).(*models.Bill)
	return bill, args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) MonthlyIncome(ctx context.Context, year int) ([]models.MonthlyIncome, error) {
	args := m.Called(ctx, year)
	rows, _ := args.Get(0).([]models.MonthlyIncome)
	return rows, args.Error(1)
}

func (m *MockReportRepository) UnpaidBills(ctx context.Context) ([]models.UnpaidBill, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.UnpaidBill)
	return rows, args.Error(1)
}

func (m *MockReportRepository) UtilityRows(ctx context.Context, year int) ([]repository.UtilityRow, error) {
	args := m.Called(ctx, year)
	rows, _ := args.Get(0).([]repository.UtilityRow)
	return rows, args.Error(1)
}

func (m *MockReportRepository) PaidIncome(ctx context.Context, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportRepository) OutstandingBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAnnouncementRepository is a mock implementation of AnnouncementRepository for testing
type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Announcement)
	return list, args.Error(1)
}

func (m *MockAnnouncementRepository) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Announcement)
	return a, args.Error(1)
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	args := m.Called(ctx, a)
	if args.Error(0) == nil {
		a.ID = 1
	}
	return args.Error(0)
}

func (m *MockAnnouncementRepository) Update(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	args := m.Called(ctx, id, patch)
	a, _ := args.Get(0).(*models.Announcement)
	return a, args.Error(1)
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type periodKey struct {
	roomID      int64
	month, year int
}

// fakeMeterRepository keeps readings in memory and runs the merge callback
// under a lock, like the row lock the real repository holds.
type fakeMeterRepository struct {
	mu       sync.Mutex
	readings map[periodKey]models.MeterReading
	nextID   int64
}

func newFakeMeterRepository() *fakeMeterRepository {
	return &fakeMeterRepository{readings: make(map[periodKey]models.MeterReading)}
}

func (f *fakeMeterRepository) FindByPeriod(_ context.Context, roomID int64, month, year int) (*models.MeterReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.readings[periodKey{roomID, month, year}]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeMeterRepository) ListByRoom(_ context.Context, roomID int64) ([]models.MeterReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MeterReading
	for k, r := range f.readings {
		if k.roomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMeterRepository) Upsert(_ context.Context, roomID int64, month, year int, merge repository.MergeFunc) (*models.MeterReading, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := periodKey{roomID, month, year}
	stored, exists := f.readings[key]
	if !exists {
		stored = models.MeterReading{RoomID: roomID, Month: month, Year: year}
	}

	merged, err := merge(stored)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		f.nextID++
		merged.ID = f.nextID
	}
	f.readings[key] = merged
	return &merged, !exists, nil
}

// fakePaymentRepository keeps a running total per bill and resolves the
// status the way the transactional repository does.
type fakePaymentRepository struct {
	mu     sync.Mutex
	totals map[int64]decimal.Decimal
	paid   map[int64]decimal.Decimal
	list   map[int64][]models.Payment
	nextID int64
}

func newFakePaymentRepository(bills map[int64]decimal.Decimal) *fakePaymentRepository {
	return &fakePaymentRepository{
		totals: bills,
		paid:   make(map[int64]decimal.Decimal),
		list:   make(map[int64][]models.Payment),
	}
}

func (f *fakePaymentRepository) Record(_ context.Context, p models.Payment, resolve repository.StatusResolver) (*models.PaymentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total, ok := f.totals[p.BillID]
	if !ok {
		return nil, nil
	}

	f.nextID++
	p.ID = f.nextID
	f.list[p.BillID] = append([]models.Payment{p}, f.list[p.BillID]...)
	paid := f.paid[p.BillID].Add(p.AmountPaid)
	f.paid[p.BillID] = paid

	return &models.PaymentResult{Payment: p, TotalPaid: paid, BillStatus: resolve(total, paid)}, nil
}

func (f *fakePaymentRepository) ListByBill(_ context.Context, billID int64) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list[billID], nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int {
	return &v
}
