// Package database opens the optional history database.
//
// It wraps GORM and selects the MySQL or SQLite dialector from configuration.
// The pipeline uses the connection to record runs and archives; when the
// database is disabled or unreachable the pipeline carries on without it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("history disabled", zap.Error(err))
//	}
package database
