package bootstrap

import (
	"context"

	"gorm.io/gorm"

	"medicsense-client/internal/cli"
	"medicsense-client/internal/config"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/implementation"
	"medicsense-client/internal/service"
	"medicsense-client/pkg/api"
)

// Container wires every service the commands need. Built once at startup.
type Container struct {
	Config *config.Config
	Logger logger.ILogger

	Renderer *cli.Renderer

	Session      *service.SessionService
	Transcript   *service.TranscriptService
	Notifier     *service.NotifierService
	Chat         *service.ChatService
	Appointments *service.AppointmentService
	Health       *service.HealthService
	Medications  *service.MedicationService
	Doctor       *service.DoctorService
	Imaging      *service.ImagingService
	Refresher    *service.RefresherService
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, renderer *cli.Renderer) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "development")

	// Repositories
	settingRepo := implementation.NewSettingRepository(db)
	transcriptRepo := implementation.NewTranscriptRepository(db)
	appointmentRepo := implementation.NewAppointmentRepository(db)
	symptomRepo := implementation.NewSymptomLogRepository(db)
	vitalsRepo := implementation.NewVitalsLogRepository(db)

	// Dispatcher
	apiClient := api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout, sysLogger)

	// Services
	notifier := service.NewNotifierService(renderer, sysLogger)
	session := service.NewSessionService(settingRepo, cfg.API.AuthToken, sysLogger)
	transcript, err := service.NewTranscriptService(ctx, transcriptRepo, sysLogger)
	if err != nil {
		return nil, err
	}

	medications := service.NewMedicationService(apiClient, session, notifier, sysLogger)

	return &Container{
		Config:       cfg,
		Logger:       sysLogger,
		Renderer:     renderer,
		Session:      session,
		Transcript:   transcript,
		Notifier:     notifier,
		Chat:         service.NewChatService(apiClient, session, transcript, notifier, symptomRepo, sysLogger),
		Appointments: service.NewAppointmentService(apiClient, session, notifier, appointmentRepo, sysLogger),
		Health:       service.NewHealthService(apiClient, session, notifier, vitalsRepo, sysLogger),
		Medications:  medications,
		Doctor:       service.NewDoctorService(apiClient, session, notifier, settingRepo, sysLogger),
		Imaging:      service.NewImagingService(apiClient, session, transcript, notifier, cfg.Upload, sysLogger),
		Refresher:    service.NewRefresherService(apiClient, session, medications, cfg.Refresh, sysLogger),
	}, nil
}
