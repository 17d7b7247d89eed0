package api

import (
	"database/sql"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "fleetflow/internal/config"
	h "fleetflow/internal/http/handlers"
	"fleetflow/internal/http/middleware"
	"fleetflow/internal/repositories"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
// Role policy: trip lifecycle writes need ADMIN or DISPATCHER, fleet record
// writes need ADMIN or MANAGER, user management is ADMIN only, reads are open
// to every authenticated role.
func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	vehicleRepo := repositories.VehicleRepository{DB: db}
	driverRepo := repositories.DriverRepository{DB: db}
	tripRepo := repositories.TripRepository{DB: db}
	maintRepo := repositories.MaintenanceRepository{DB: db}
	fuelRepo := repositories.FuelRepository{DB: db}
	expenseRepo := repositories.ExpenseRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}

	driverSvc := services.DriverService{Drivers: driverRepo}
	authSvc := services.AuthService{
		Users:     userRepo,
		JWTSecret: []byte(env.JWTSecret),
		TokenTTL:  env.JWTTTL,
	}

	authH := h.AuthHandler{Auth: authSvc, Users: services.UserService{Users: userRepo}}
	userH := h.UserHandler{Users: services.UserService{Users: userRepo}}
	vehicleH := h.VehicleHandler{Vehicles: services.VehicleService{Vehicles: vehicleRepo}}
	driverH := h.DriverHandler{Drivers: driverSvc}
	tripH := h.TripHandler{Trips: services.TripService{
		DB:          db,
		Trips:       tripRepo,
		Vehicles:    vehicleRepo,
		Drivers:     driverRepo,
		Eligibility: driverSvc,
	}}
	maintH := h.MaintenanceHandler{Maintenance: services.MaintenanceService{
		DB:       db,
		Logs:     maintRepo,
		Vehicles: vehicleRepo,
	}}
	fuelH := h.FuelLogHandler{Fuel: services.FuelService{Logs: fuelRepo, Vehicles: vehicleRepo}}
	expenseH := h.ExpenseHandler{Expenses: services.ExpenseService{
		Expenses: expenseRepo,
		Vehicles: vehicleRepo,
		Trips:    tripRepo,
	}}
	analyticsH := h.AnalyticsHandler{Analytics: services.AnalyticsService{DB: db}}
	reportsH := h.ReportsHandler{Reports: services.ReportsService{DB: db}}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.GET("/me", middleware.Auth(authSvc), authH.Me)

		protected := api.Group("")
		protected.Use(middleware.Auth(authSvc))

		adminOnly := middleware.RequireRoles("ADMIN")
		fleetWrite := middleware.RequireRoles("ADMIN", "MANAGER")
		tripWrite := middleware.RequireRoles("ADMIN", "DISPATCHER")

		users := protected.Group("/users", adminOnly)
		users.GET("", userH.List)
		users.GET("/:id", userH.Get)
		users.PATCH("/:id", userH.Update)
		users.DELETE("/:id", userH.Delete)

		vehicles := protected.Group("/vehicles")
		vehicles.GET("", vehicleH.List)
		vehicles.GET("/:id", vehicleH.Get)
		vehicles.POST("", fleetWrite, vehicleH.Create)
		vehicles.PATCH("/:id", fleetWrite, vehicleH.Update)
		vehicles.DELETE("/:id", fleetWrite, vehicleH.Delete)

		drivers := protected.Group("/drivers")
		drivers.GET("", driverH.List)
		drivers.GET("/:id", driverH.Get)
		drivers.POST("", fleetWrite, driverH.Create)
		drivers.PATCH("/:id", fleetWrite, driverH.Update)
		drivers.DELETE("/:id", fleetWrite, driverH.Delete)

		trips := protected.Group("/trips")
		trips.GET("", tripH.List)
		trips.GET("/:id", tripH.Get)
		trips.POST("", tripWrite, tripH.Create)
		trips.PATCH("/:id", tripWrite, tripH.Update)
		trips.POST("/:id/dispatch", tripWrite, tripH.Dispatch)
		trips.POST("/:id/complete", tripWrite, tripH.Complete)
		trips.POST("/:id/cancel", tripWrite, tripH.Cancel)
		trips.DELETE("/:id", tripWrite, tripH.Delete)

		maintenance := protected.Group("/maintenance-logs")
		maintenance.GET("", maintH.List)
		maintenance.GET("/:id", maintH.Get)
		maintenance.POST("", fleetWrite, maintH.Create)
		maintenance.PATCH("/:id", fleetWrite, maintH.Update)
		maintenance.DELETE("/:id", fleetWrite, maintH.Delete)

		fuelLogs := protected.Group("/fuel-logs")
		fuelLogs.GET("", fuelH.List)
		fuelLogs.GET("/:id", fuelH.Get)
		fuelLogs.POST("", fleetWrite, fuelH.Create)
		fuelLogs.PATCH("/:id", fleetWrite, fuelH.Update)
		fuelLogs.DELETE("/:id", fleetWrite, fuelH.Delete)

		expenses := protected.Group("/expenses")
		expenses.GET("", expenseH.List)
		expenses.GET("/:id", expenseH.Get)
		expenses.POST("", fleetWrite, expenseH.Create)
		expenses.PATCH("/:id", fleetWrite, expenseH.Update)
		expenses.DELETE("/:id", fleetWrite, expenseH.Delete)

		analytics := protected.Group("/analytics")
		analytics.GET("/kpis", analyticsH.KPIs)
		analytics.GET("/vehicles", analyticsH.Vehicles)
		analytics.GET("/monthly", analyticsH.Monthly)
		analytics.GET("/utilization", analyticsH.Utilization)
		analytics.GET("/fuel-efficiency", analyticsH.FuelEfficiency)

		reports := protected.Group("/reports")
		reports.GET("/:name", reportsH.Get)
		reports.GET("/:name/csv", reportsH.CSV)
		reports.GET("/:name/pdf", reportsH.PDF)
		reports.GET("/:name/xlsx", reportsH.XLSX)
	}

	return r
}
