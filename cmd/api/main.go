package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonsia/bd-crm/internal/infra/database"
	"github.com/maisonsia/bd-crm/internal/infra/http/handlers"
	"github.com/maisonsia/bd-crm/internal/infra/http/middleware"
	"github.com/maisonsia/bd-crm/internal/infra/mail"
	"github.com/maisonsia/bd-crm/internal/infra/queue"
	"github.com/maisonsia/bd-crm/internal/infra/worker"
	"github.com/maisonsia/bd-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	logRepo := database.NewFollowUpLogRepository(db)

	// 2. Notification collaborators
	mailSender := mail.NewSender(mail.Config{
		Host:       os.Getenv("MAIL_HOST"),
		Port:       envInt("MAIL_PORT", 587),
		User:       os.Getenv("MAIL_USER"),
		Password:   os.Getenv("MAIL_PASS"),
		SenderName: envOr("MAIL_SENDER_NAME", "CRM System"),
		SenderMail: os.Getenv("MAIL_SENDER_EMAIL"),
	})
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// 3. Queue worker (consumes notification tasks, sends mail, writes the log)
	notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, logRepo)
	go notificationWorker.Start(queue.QueueName)

	// 4. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo)
	updateStatusUC := usecase.NewUpdateMeetingStatusUseCase(leadRepo, producer)
	assignUC := usecase.NewAssignLeadUseCase(leadRepo)
	rescheduleUC := usecase.NewRescheduleMeetingUseCase(leadRepo)
	scanUC := usecase.NewFollowUpScanUseCase(leadRepo, logRepo, mailSender)

	// 5. Daily scan trigger
	scanWorker := worker.NewScanWorker(scanUC, envInt("SCAN_HOUR", 9), envInt("SCAN_MINUTE", 0))
	go scanWorker.Start(context.Background())

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, assignUC, rescheduleUC, leadRepo, logRepo)
	statusHandler := handlers.NewStatusHandler(updateStatusUC)
	statsHandler := handlers.NewStatsHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/leads", leadHandler.Create)
	r.Get("/leads", leadHandler.List)
	r.Get("/leads/unassigned", leadHandler.ListUnassigned)
	r.Get("/leads/{leadID}", leadHandler.Get)
	r.Get("/leads/{leadID}/followups", leadHandler.FollowUpHistory)
	r.Post("/leads/{leadID}/status", statusHandler.Handle)
	r.Post("/leads/{leadID}/assign", leadHandler.Assign)
	r.Post("/leads/{leadID}/reschedule", leadHandler.Reschedule)
	r.Get("/stats", statsHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("BD CRM server running on port %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
