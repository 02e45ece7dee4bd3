package bootloader

// Config holds the session configuration.
type Config struct {
	// ProgressCallback is called during programming to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Verify adds the CRC verify frame when flashing an image
	Verify bool

	// Run adds the final run frame when flashing an image
	Run bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Verify: true,
		Run:    true,
	}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithProgressCallback sets a callback function to track programming progress.
//
// Example:
//
//	session := bootloader.New(device,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the session operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithVerify enables or disables image verification in Flash.
// Default is true.
func WithVerify(verify bool) Option {
	return func(c *Config) {
		c.Verify = verify
	}
}

// WithRun enables or disables starting the application at the end of Flash.
// Default is true.
func WithRun(run bool) Option {
	return func(c *Config) {
		c.Run = run
	}
}
