//go:build tinygo && atsamd21

package samd21

import "periphcode-go/x/mmio"

// Register offsets within each block.
const (
	offADCCtrlA     = 0x00
	offADCRefCtrl   = 0x01
	offADCAvgCtrl   = 0x02
	offADCCtrlB     = 0x04
	offADCSWTrig    = 0x0C
	offADCInputCtrl = 0x10
	offADCIntFlag   = 0x18
	offADCStatus    = 0x19
	offADCResult    = 0x1A
	offADCCalib     = 0x28

	offI2CSCtrlA    = 0x00
	offI2CSCtrlB    = 0x04
	offI2CSIntEnSet = 0x16
	offI2CSIntFlag  = 0x18
	offI2CSStatus   = 0x1A
	offI2CSSyncBusy = 0x1C
	offI2CSAddr     = 0x24
	offI2CSData     = 0x28

	offPMAPBCMask = 0x20

	offGCLKStatus  = 0x01
	offGCLKClkCtrl = 0x02

	sercomStride = 0x400
)

func mapHardware() (*Peripherals, error) {
	p := &Peripherals{
		ADC: NewADC(ADCRegs{
			CTRLA:     mmio.At8(baseADC + offADCCtrlA),
			REFCTRL:   mmio.At8(baseADC + offADCRefCtrl),
			AVGCTRL:   mmio.At8(baseADC + offADCAvgCtrl),
			CTRLB:     mmio.At16(baseADC + offADCCtrlB),
			SWTRIG:    mmio.At8(baseADC + offADCSWTrig),
			INPUTCTRL: mmio.At32(baseADC + offADCInputCtrl),
			INTFLAG:   mmio.At8(baseADC + offADCIntFlag),
			STATUS:    mmio.At8(baseADC + offADCStatus),
			RESULT:    mmio.At16(baseADC + offADCResult),
			CALIB:     mmio.At16(baseADC + offADCCalib),
		}),
		PM:   NewPowerManager(mmio.At32(basePM + offPMAPBCMask)),
		GCLK: NewClockController(mmio.At16(baseGCLK+offGCLKClkCtrl), mmio.At8(baseGCLK+offGCLKStatus)),
		NVM:  NewNVMCalibration(mmio.At32(addrNVMCalib), mmio.At32(addrNVMCalib+4)),
	}
	for i := 0; i < SercomCount; i++ {
		base := uintptr(baseSERCOM + i*sercomStride)
		p.Sercom[i] = NewSercom(uint8(i), I2CSRegs{
			CTRLA:    mmio.At32(base + offI2CSCtrlA),
			CTRLB:    mmio.At32(base + offI2CSCtrlB),
			ADDR:     mmio.At32(base + offI2CSAddr),
			INTENSET: mmio.At8(base + offI2CSIntEnSet),
			INTFLAG:  mmio.At8(base + offI2CSIntFlag),
			STATUS:   mmio.At16(base + offI2CSStatus),
			SYNCBUSY: mmio.At32(base + offI2CSSyncBusy),
			DATA:     mmio.At8(base + offI2CSData),
		})
	}
	return p, nil
}
