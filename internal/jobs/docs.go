// Package jobs provides scheduled background tasks for both bots.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Every schedule uses six fields with seconds first.
//
// # Available Jobs
//
// 1. ExportJob - writes results.xlsx and orders.xlsx into the export directory on a configured schedule
// 2. SessionCleanupJob - runs every ten minutes to drop abandoned conversation sessions from the database
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	exportJob := jobs.NewExportJob(submissionsHandler, ordersHandler, "./exports", "0 0 * * * *", jobMetrics, logger)
//	jobManager := jobs.NewJobManager(exportJob, jobs.NewSessionCleanupJob(store, jobMetrics, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - An empty table is not an export failure; the previous workbook is left in place
// - Every other failure is logged and counted in job_failure
// - Failed job starts stop any already running jobs
package jobs
