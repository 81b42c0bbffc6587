// Package jobs provides scheduled background tasks of the yard.
//
// Jobs use github.com/robfig/cron/v3 with standard five-field expressions.
//
// # Available Jobs
//
// OverdueOrderJob fails unpaid orders that stayed in Created longer than the payment TTL.
// Orders with an active schedule are skipped; visits in progress are never touched.
//
// # Usage
//
//	job := jobs.NewOverdueOrderJob(failOverdueHandler, 24*time.Hour, "*/5 * * * *", logger)
//	manager := jobs.NewJobManager(job)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer manager.StopAll()
//
// The sweep CLI command calls RunOnce directly.
package jobs
