package schedule

// Config holds configuration for scheduled jobs.
type Config struct {
	// UpdateCheck is a cron expression for the periodic update check.
	// Empty disables the check.
	UpdateCheck string `mapstructure:"update_check" default:"@every 1h"`
	// AutoUpdate applies an available update when the server is not running.
	AutoUpdate bool `mapstructure:"auto_update" default:"false"`
}
