package bootloader

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/samber/lo"

	"github.com/moffa90/go-efm8/hexfile"
	"github.com/moffa90/go-efm8/protocol"
)

// Transport exchanges HID feature reports with the bootloader.
// The first byte of every report is the report ID.
type Transport interface {
	// SendFeatureReport sends a feature report
	SendFeatureReport(report []byte) (int, error)

	// GetFeatureReport reads a feature report; report[0] selects the report ID
	GetFeatureReport(report []byte) (int, error)
}

// State is the position of the session in the frame exchange.
type State int

// Session states.
const (
	StateIdle State = iota
	StateFrameSent
	StateAwaitingAck
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFrameSent:
		return "frame-sent"
	case StateAwaitingAck:
		return "awaiting-ack"
	default:
		return fmt.Sprintf("state %d", int(s))
	}
}

// Session drives the AN945 frame exchange with an EFM8 bootloader.
// Each frame is sent in feature reports of at most 64 bytes and confirmed
// by a single acknowledgement byte before the next frame is sent.
//
// A Session is not safe for concurrent use.
type Session struct {
	transport Transport
	config    Config
	state     State
}

// New creates a new Session with the given transport and options.
//
// Example:
//
//	device, err := usbhid.Open(protocol.VendorID, protocol.ProductID, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer device.Close()
//
//	session := bootloader.New(device,
//	    bootloader.WithProgressCallback(progressFunc),
//	)
func New(transport Transport, opts ...Option) *Session {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		transport: transport,
		config:    cfg,
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Flash programs the image into the device:
//  1. Setup
//  2. Erase and write all chunks, first byte blanked
//  3. Verify image CRC (unless disabled with WithVerify)
//  4. Write the first byte
//  5. Run the application (unless disabled with WithRun)
//
// Example:
//
//	img, _ := hexfile.Parse("firmware.hex")
//	err := session.Flash(context.Background(), img)
func (s *Session) Flash(ctx context.Context, img *hexfile.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	s.logInfo("flashing image",
		"bytes", img.Len(),
		"crc", fmt.Sprintf("0x%04X", img.CRC16()),
		"verify", s.config.Verify,
		"run", s.config.Run,
	)

	frames := img.BuildFrames(
		protocol.WithVerify(s.config.Verify),
		protocol.WithRun(s.config.Run),
	)

	return s.run(ctx, frames, img.Len())
}

// Run sends the frames in order and checks every acknowledgement.
//
// The first frame that is not acknowledged with protocol.AckSuccess aborts
// the run: a rejected verify frame returns *VerificationError, any other
// rejected frame *ResponseError. Remaining frames are never sent and no
// frame is retried.
//
// The context is checked between frames. A device that never answers blocks
// the call.
func (s *Session) Run(ctx context.Context, frames iter.Seq[protocol.Frame]) error {
	return s.run(ctx, frames, 0)
}

func (s *Session) run(ctx context.Context, frames iter.Seq[protocol.Frame], totalBytes int) error {
	startTime := time.Now()
	count := 0
	bytesWritten := 0

	defer func() { s.state = StateIdle }()

	for frame := range frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		s.logDebug("sending frame",
			"frame", frame.String(),
			"length", frame.Len(),
		)

		ack, err := s.Exchange(frame)
		if err != nil {
			return fmt.Errorf("%s frame: %w", frame.Command, err)
		}

		if ack != protocol.AckSuccess {
			s.logError("frame rejected",
				"frame", frame.String(),
				"ack", protocol.AckName(ack),
			)

			if frame.Command == protocol.CmdVerify {
				return &VerificationError{Ack: ack}
			}

			addr, _ := frame.Address()
			return &ResponseError{Command: frame.Command, Address: addr, Ack: ack}
		}

		count++
		phase := phaseOf(frame)
		if phase == PhaseProgramming {
			bytesWritten += len(frame.Payload) - 2
		}

		s.reportProgress(Progress{
			Phase:        phase,
			Frames:       count,
			BytesWritten: bytesWritten,
			TotalBytes:   totalBytes,
			Percentage:   percentage(bytesWritten, totalBytes, phase),
			ElapsedTime:  time.Since(startTime),
		})
	}

	s.reportProgress(Progress{
		Phase:        PhaseComplete,
		Frames:       count,
		BytesWritten: bytesWritten,
		TotalBytes:   totalBytes,
		Percentage:   100,
		ElapsedTime:  time.Since(startTime),
	})

	s.logInfo("programming complete",
		"frames", count,
		"bytes", bytesWritten,
		"elapsed", time.Since(startTime).String(),
	)

	return nil
}

// Exchange sends a single frame and returns the device's acknowledgement.
func (s *Session) Exchange(frame protocol.Frame) (byte, error) {
	if err := s.sendFrame(frame); err != nil {
		return 0, err
	}
	s.state = StateFrameSent

	return s.readAck()
}

// sendFrame splits the serialized frame into reports prefixed with the report ID.
func (s *Session) sendFrame(frame protocol.Frame) error {
	for _, chunk := range lo.Chunk(frame.Bytes(), protocol.MaxReportData) {
		report := make([]byte, 0, 1+len(chunk))
		report = append(report, protocol.ReportID)
		report = append(report, chunk...)

		if _, err := s.transport.SendFeatureReport(report); err != nil {
			return fmt.Errorf("send feature report: %w", err)
		}
	}

	return nil
}

// readAck reads the acknowledgement report.
func (s *Session) readAck() (byte, error) {
	s.state = StateAwaitingAck

	report := make([]byte, protocol.AckReportSize)
	report[0] = protocol.ReportID

	n, err := s.transport.GetFeatureReport(report)
	if err != nil {
		return 0, fmt.Errorf("get feature report: %w", err)
	}

	ack, err := protocol.ParseAck(report[:lo.Clamp(n, 0, len(report))])
	if err != nil {
		return 0, err
	}

	s.state = StateIdle
	return ack, nil
}

// phaseOf maps an acknowledged frame to a programming phase.
func phaseOf(frame protocol.Frame) string {
	switch frame.Command {
	case protocol.CmdSetup:
		return PhaseSetup
	case protocol.CmdVerify:
		return PhaseVerifying
	case protocol.CmdRun:
		return PhaseRunning
	case protocol.CmdWrite:
		// only the restoring write targets address 0; chunk 0 is always an erase
		if addr, ok := frame.Address(); ok && addr == 0 {
			return PhaseRestoring
		}
	}
	return PhaseProgramming
}

// percentage reserves the last 5% for the frames after the image chunks.
func percentage(written, total int, phase string) float64 {
	if total <= 0 {
		return 0
	}

	switch phase {
	case PhaseVerifying:
		return 97
	case PhaseRestoring:
		return 99
	case PhaseRunning:
		return 100
	}

	return float64(written) / float64(total) * 95
}

// reportProgress calls the progress callback if configured.
func (s *Session) reportProgress(progress Progress) {
	if s.config.ProgressCallback != nil {
		s.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Session) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
