package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/middleware"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// API groups the resource handlers mounted under /api/v1.
type API struct {
	Auth          *AuthHandler
	Rooms         *RoomHandler
	Tenants       *TenantHandler
	Meters        *MeterHandler
	Bills         *BillHandler
	Reports       *ReportHandler
	Announcements *AnnouncementHandler
}

// RegisterRoutes mounts the API on v1 with its access rules.
func (api API) RegisterRoutes(v1 *gin.RouterGroup, tokens *auth.TokenManager) {
	authenticated := middleware.Authenticate(tokens)
	admin := []gin.HandlerFunc{authenticated, middleware.RequireRole(models.RoleAdmin)}
	withAdmin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, admin...), h)
	}
	ownerOrAdmin := func(param string, h gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{authenticated, middleware.RequireTenantAccess(param), h}
	}

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", api.Auth.Login)
		authGroup.GET("/me", authenticated, api.Auth.Me)
	}

	rooms := v1.Group("/rooms")
	{
		rooms.GET("", api.Rooms.List)
		rooms.GET("/:id", api.Rooms.Get)
		rooms.POST("", withAdmin(api.Rooms.Create)...)
		rooms.PUT("/:id", withAdmin(api.Rooms.Update)...)
		rooms.DELETE("/:id", withAdmin(api.Rooms.Delete)...)
	}

	tenants := v1.Group("/tenants")
	{
		tenants.GET("", withAdmin(api.Tenants.List)...)
		tenants.GET("/user/:userId", authenticated, api.Tenants.GetByUser)
		tenants.GET("/:id", ownerOrAdmin("id", api.Tenants.Get)...)
		tenants.POST("", withAdmin(api.Tenants.Create)...)
		tenants.PUT("/:id", withAdmin(api.Tenants.Update)...)
		tenants.DELETE("/:id", withAdmin(api.Tenants.Delete)...)
	}

	meters := v1.Group("/meter-readings")
	{
		meters.GET("/room/:roomId", api.Meters.ListByRoom)
		meters.POST("", withAdmin(api.Meters.Upsert)...)
	}

	bills := v1.Group("/bills")
	{
		bills.GET("", withAdmin(api.Bills.List)...)
		bills.POST("/generate", withAdmin(api.Bills.Generate)...)
		bills.POST("/payments", withAdmin(api.Bills.RecordPayment)...)
		bills.GET("/tenant/:tenantId", ownerOrAdmin("tenantId", api.Bills.ListByTenant)...)
		bills.GET("/tenant/:tenantId/current", ownerOrAdmin("tenantId", api.Bills.Current)...)
		bills.GET("/:id", withAdmin(api.Bills.Get)...)
		bills.PUT("/:id/status", withAdmin(api.Bills.UpdateStatus)...)
		bills.GET("/:id/payments", authenticated, api.Bills.Payments)
	}

	reports := v1.Group("/reports", admin...)
	{
		reports.GET("/dashboard", api.Reports.Dashboard)
		reports.GET("/income", api.Reports.Income)
		reports.GET("/income/export", api.Reports.ExportIncome)
		reports.GET("/unpaid-bills", api.Reports.UnpaidBills)
		reports.GET("/unpaid-bills/export", api.Reports.ExportUnpaidBills)
		reports.GET("/utility-usage", api.Reports.UtilityUsage)
	}

	announcements := v1.Group("/announcements")
	{
		announcements.GET("", api.Announcements.List)
		announcements.GET("/:id", api.Announcements.Get)
		announcements.POST("", withAdmin(api.Announcements.Create)...)
		announcements.PUT("/:id", withAdmin(api.Announcements.Update)...)
		announcements.DELETE("/:id", withAdmin(api.Announcements.Delete)...)
	}
}
