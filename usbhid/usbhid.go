// Package usbhid opens the EFM8 factory bootloader as a USB HID device and
// exposes the feature report transport used by package bootloader.
package usbhid

import (
	"errors"
	"fmt"

	"github.com/karalabe/hid"
	"github.com/samber/lo"
)

// ErrNotFound is returned when no matching device is attached.
var ErrNotFound = errors.New("bootloader not found")

// ErrUnsupported is returned when the platform has no HID support.
var ErrUnsupported = errors.New("usb hid not supported on this platform")

// featureDevice is the part of an open HID device used for the exchange.
type featureDevice interface {
	SendFeatureReport(report []byte) (int, error)
	GetFeatureReport(report []byte) (int, error)
	Close() error
}

// Device is an open bootloader. It implements bootloader.Transport.
type Device struct {
	dev  featureDevice
	info hid.DeviceInfo
}

// Enumerate lists the attached HID devices with the given IDs.
func Enumerate(vendorID, productID uint16) ([]hid.DeviceInfo, error) {
	if !hid.Supported() {
		return nil, ErrUnsupported
	}

	infos, err := hid.Enumerate(vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("enumerate: %w", err)
	}

	return infos, nil
}

// Open opens the first attached device with the given IDs. A non-empty
// serial selects the device with that serial number.
//
// The returned device must be closed by the caller.
func Open(vendorID, productID uint16, serial string) (*Device, error) {
	infos, err := Enumerate(vendorID, productID)
	if err != nil {
		return nil, err
	}

	info, err := selectDevice(infos, serial)
	if err != nil {
		return nil, fmt.Errorf("%04X:%04X: %w", vendorID, productID, err)
	}

	dev, err := info.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", info.Path, err)
	}

	return &Device{dev: dev, info: info}, nil
}

// selectDevice picks the first device, or the first device with the serial.
func selectDevice(infos []hid.DeviceInfo, serial string) (hid.DeviceInfo, error) {
	if serial != "" {
		infos = lo.Filter(infos, func(info hid.DeviceInfo, _ int) bool {
			return info.Serial == serial
		})
	}

	info, ok := lo.First(infos)
	if !ok {
		if serial != "" {
			return hid.DeviceInfo{}, fmt.Errorf("serial %q: %w", serial, ErrNotFound)
		}
		return hid.DeviceInfo{}, ErrNotFound
	}

	return info, nil
}

// Info returns the USB description of the device.
func (d *Device) Info() hid.DeviceInfo {
	return d.info
}

// SendFeatureReport sends a feature report; report[0] is the report ID.
func (d *Device) SendFeatureReport(report []byte) (int, error) {
	return d.dev.SendFeatureReport(report)
}

// GetFeatureReport reads a feature report; report[0] selects the report ID.
func (d *Device) GetFeatureReport(report []byte) (int, error) {
	return d.dev.GetFeatureReport(report)
}

// Close releases the device.
func (d *Device) Close() error {
	return d.dev.Close()
}
