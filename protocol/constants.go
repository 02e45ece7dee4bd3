package protocol

// ProtocolName is the Silicon Labs application note implemented by this library.
const ProtocolName = "AN945"

// Frame structure constants per AN945.
const (
	// StartOfFrame is the frame start marker ('$')
	StartOfFrame = '$'

	// FrameHeaderSize is the number of bytes preceding the payload:
	// SOF(1) + LEN(1) + CMD(1)
	FrameHeaderSize = 3
)

// Command codes per AN945.
const (
	// CmdSetup signals the start of a programming session
	CmdSetup Command = 0x31

	// CmdErase erases the flash page at the address, then writes the data
	CmdErase Command = 0x32

	// CmdWrite writes data at the address
	CmdWrite Command = 0x33

	// CmdVerify asks the bootloader to compare the CRC of a flash range
	CmdVerify Command = 0x34

	// CmdRun resets the device and starts the application
	CmdRun Command = 0x36
)

// AckSuccess is the acknowledgement byte the bootloader returns for an
// accepted frame ('@'). Any other value is a failure.
const AckSuccess = 0x40

// Image layout constants.
const (
	// ChunkSize is the number of image bytes carried by one erase/write frame
	ChunkSize = 128

	// PageSize is the flash page size; frames starting on a page boundary erase it
	PageSize = 512

	// BlankByte is sent in place of the first image byte until everything
	// else has been written and verified
	BlankByte = 0xFF
)

// USB HID transport constants.
const (
	// VendorID is the Silicon Labs USB vendor ID
	VendorID = 0x10C4

	// ProductID identifies the EFM8 factory HID bootloader
	ProductID = 0xEAC9

	// ReportID is the feature report ID used for every transfer
	ReportID = 0x00

	// MaxReportData is the maximum number of frame bytes per feature report
	MaxReportData = 64

	// AckReportSize is the size of the feature report carrying the acknowledgement
	AckReportSize = 2
)

var (
	setupPayload = []byte{0xA5, 0xF1, 0x00}
	runPayload   = []byte{0x00, 0x00}
)
