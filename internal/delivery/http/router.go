package http

import (
	"net/http"

	"blood-donation-backend/internal/delivery/http/handler"
	"blood-donation-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// StoragePath is where stored files such as avatars are served.
const StoragePath = "/storage"

type Router struct {
	router               *mux.Router
	log                  *logrus.Logger
	authHandler          *handler.AuthHandler
	profileHandler       *handler.ProfileHandler
	donorScheduleHandler *handler.DonorScheduleHandler
	donationHandler      *handler.DonationHandler
	reportHandler        *handler.ReportHandler
	bloodStockHandler    *handler.BloodStockHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	storageHandler       http.Handler
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	donorScheduleHandler *handler.DonorScheduleHandler,
	donationHandler *handler.DonationHandler,
	reportHandler *handler.ReportHandler,
	bloodStockHandler *handler.BloodStockHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	storageHandler http.Handler,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		log:                  log,
		authHandler:          authHandler,
		profileHandler:       profileHandler,
		donorScheduleHandler: donorScheduleHandler,
		donationHandler:      donationHandler,
		reportHandler:        reportHandler,
		bloodStockHandler:    bloodStockHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		storageHandler:       storageHandler,
	}
}

func donorOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequireDonor(h)
}

func pmiOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequirePmi(h)
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	if r.storageHandler != nil {
		r.router.PathPrefix(StoragePath + "/").Handler(http.StripPrefix(StoragePath, r.storageHandler)).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/donor", r.authHandler.RegisterDonor).Methods(http.MethodPost)
	auth.HandleFunc("/register/pmi", r.authHandler.RegisterPmi).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/google", r.authHandler.GoogleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Profiles
	protected.Handle("/donor/profile", donorOnly(r.profileHandler.GetDonorProfile)).Methods(http.MethodGet)
	protected.Handle("/donor/profile", donorOnly(r.profileHandler.UpdateDonorProfile)).Methods(http.MethodPatch)
	protected.Handle("/donor/last-donation", donorOnly(r.reportHandler.GetLastDonation)).Methods(http.MethodGet)
	protected.Handle("/pmi/profile", pmiOnly(r.profileHandler.GetPmiProfile)).Methods(http.MethodGet)
	protected.Handle("/pmi/profile", pmiOnly(r.profileHandler.UpdatePmiProfile)).Methods(http.MethodPatch)

	// Donor schedules
	protected.HandleFunc("/donor-schedules", r.donorScheduleHandler.ListSchedules).Methods(http.MethodGet)
	protected.Handle("/donor-schedules", pmiOnly(r.donorScheduleHandler.CreateSchedule)).Methods(http.MethodPost)
	protected.HandleFunc("/donor-schedules/{id}", r.donorScheduleHandler.GetSchedule).Methods(http.MethodGet)
	protected.Handle("/donor-schedules/{id}", pmiOnly(r.donorScheduleHandler.UpdateSchedule)).Methods(http.MethodPatch)
	protected.Handle("/donor-schedules/{id}/register", donorOnly(r.donationHandler.RegisterForSchedule)).Methods(http.MethodPost)
	protected.Handle("/donor-schedules/{id}/participants", pmiOnly(r.donorScheduleHandler.ListParticipants)).Methods(http.MethodGet)
	protected.Handle("/donor-schedules/{id}/participants/{donorId}", pmiOnly(r.donorScheduleHandler.GetParticipant)).Methods(http.MethodGet)
	protected.Handle("/donor-schedules/{id}/participants/{donorId}", pmiOnly(r.donationHandler.Finalize)).Methods(http.MethodPut)

	// Donations
	protected.Handle("/donations/walk-in", pmiOnly(r.donationHandler.WalkIn)).Methods(http.MethodPost)

	// Histories, export must be matched before the id route
	protected.HandleFunc("/histories", r.reportHandler.GetHistories).Methods(http.MethodGet)
	protected.HandleFunc("/histories/export", r.reportHandler.ExportHistories).Methods(http.MethodGet)
	protected.HandleFunc("/histories/{id}", r.reportHandler.GetHistory).Methods(http.MethodGet)

	// Reports
	protected.HandleFunc("/reports/blood-stocks", r.reportHandler.GetStockSummary).Methods(http.MethodGet)
	protected.HandleFunc("/reports/donations-monthly", r.reportHandler.GetDonationsByMonth).Methods(http.MethodGet)
	protected.HandleFunc("/reports/top-donors", r.reportHandler.GetTopDonors).Methods(http.MethodGet)

	// Blood stocks
	protected.Handle("/blood-stocks", pmiOnly(r.bloodStockHandler.ListStocks)).Methods(http.MethodGet)
	protected.Handle("/blood-stocks", pmiOnly(r.bloodStockHandler.ProvisionStock)).Methods(http.MethodPost)

	// Audit logs
	protected.HandleFunc("/audit-logs/me", r.auditLogHandler.GetMyAuditLogs).Methods(http.MethodGet)

	r.router.Use(middleware.Logger(r.log))
	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
