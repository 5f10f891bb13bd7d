// Package database connects to the optional MySQL database that stores the
// lifecycle history.
//
// It wraps GORM with the MySQL driver. Connection settings include bounded
// dial/read/write timeouts so an unreachable database never stalls a
// lifecycle operation; the connection is verified with a ping before it is
// returned.
//
// # Schema Inspection
//
// GetTableColumns reads the live column definitions of a table. The history
// package uses it to verify that the lifecycle_events table matches its
// model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("History disabled", zap.Error(err))
//	}
package database
