package logger

import "time"

// Timed logs the start of an operation at debug level and returns a func that
// logs its duration when called.
//
//	defer logger.Timed(log, "load site export")()
func Timed(log Logger, operation string) func() {
	start := time.Now()
	log.Debug("starting", String("operation", operation))

	return func() {
		log.Debug("completed",
			String("operation", operation),
			Duration("took", time.Since(start)))
	}
}
