package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/starkedge/timelogger-backend-go/internal/config"
	appHTTP "github.com/starkedge/timelogger-backend-go/internal/handler/http"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/cron"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/email"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/proofhub"
	alertService "github.com/starkedge/timelogger-backend-go/internal/service/alert"
	reportService "github.com/starkedge/timelogger-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	upstream := proofhub.NewClient(cfg.Upstream)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	reportSvc := reportService.NewReportService(upstream, upstream, upstream)
	alertSvc := alertService.NewAlertService(upstream, upstream, emailService, cfg.Alert.Recipient)

	reportHandler := appHTTP.NewReportHandler(reportSvc)
	dailyCheckHandler := appHTTP.NewDailyCheckHandler(alertSvc)

	router := appHTTP.NewRouter(reportHandler, dailyCheckHandler, cfg.App.FrontendURL)

	scheduler := cron.NewScheduler()
	cron.NewAlertJobs(alertSvc, cfg.Alert.RunHour).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
