package bootloader

import "time"

// Programming phases reported in Progress.Phase.
const (
	PhaseSetup       = "setup"
	PhaseProgramming = "programming"
	PhaseVerifying   = "verifying"
	PhaseRestoring   = "restoring"
	PhaseRunning     = "running"
	PhaseComplete    = "complete"
)

// Progress contains information about the programming progress.
// Passed to ProgressCallback after every acknowledged frame.
type Progress struct {
	// Phase describes the current operation phase:
	//   "setup"       - Setup frame accepted
	//   "programming" - Erasing and writing image chunks
	//   "verifying"   - Image CRC accepted by the device
	//   "restoring"   - First image byte written
	//   "running"     - Application started
	//   "complete"    - All frames accepted
	Phase string

	// Frames is the number of frames acknowledged so far
	Frames int

	// BytesWritten is the number of image bytes written so far
	BytesWritten int

	// TotalBytes is the image size, or 0 when unknown
	TotalBytes int

	// Percentage is the completion percentage (0.0 to 100.0), or 0 when
	// TotalBytes is unknown
	Percentage float64

	// ElapsedTime is the time elapsed since programming started
	ElapsedTime time.Duration
}

// ProgressCallback is called during programming to report progress.
// Implementations should return quickly to avoid blocking the programming operation.
//
// Example:
//
//	session := bootloader.New(device,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %.1f%% - %d/%d bytes\n",
//	            p.Phase, p.Percentage, p.BytesWritten, p.TotalBytes)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the session.
// This allows integration with any logging framework.
//
// Example with logrus:
//
//	type logrusLogger struct{ entry *logrus.Entry }
//	func (l logrusLogger) Debug(msg string, kv ...interface{}) { l.entry.WithFields(fields(kv)).Debug(msg) }
//	func (l logrusLogger) Info(msg string, kv ...interface{})  { l.entry.WithFields(fields(kv)).Info(msg) }
//	func (l logrusLogger) Error(msg string, kv ...interface{}) { l.entry.WithFields(fields(kv)).Error(msg) }
//
//	session := bootloader.New(device, bootloader.WithLogger(logrusLogger{...}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
