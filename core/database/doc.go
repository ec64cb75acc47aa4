// Package database opens the GORM connection used for the sync run history.
//
// MySQL and SQLite are supported. Connect applies pool settings suited to the
// driver and pings the database before returning.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", zap.Error(err))
//	}
package database
