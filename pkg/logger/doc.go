// Package logger builds the *slog.Logger used across taskd.
//
// New creates a logger configured by Option functions:
//
//   - output format (text or json) and minimum level, by value or by name
//   - presets per environment (WithDevelopment, WithStaging, WithProduction)
//   - static attributes applied to every record
//   - ContextExtractor callbacks that pull attributes such as the request id
//     out of the context on every Handle call
//   - extra outputs, typically a DailyFile next to stdout
//
// Attribute helpers (TaskID, Priority, RetryCount, Path, Outcome, Error, ...)
// keep key names consistent between the HTTP layer and the scheduler, so a
// single task can be followed through its log records by task_id.
//
// # Usage
//
//	file, err := logger.NewDailyFile("logs", "app.log")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "taskd"),
//	    logger.WithAdditionalOutput(file),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "task accepted", logger.TaskID(task.ID), logger.Priority(int(task.Priority)))
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("store closed", logger.Error(err))
//
// needs no nil check.
package logger
