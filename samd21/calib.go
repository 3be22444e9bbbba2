package samd21

import "periphcode-go/x/mmio"

// NVM software calibration row layout (bit offsets into the 128-bit row).
const (
	calibADCLinearityPos = 27 // 8 bits, 27..34
	calibADCBiasPos      = 35 // 3 bits, 35..37
)

// NVMCalibration reads factory calibration constants from the NVM software
// calibration row. The row is read-only.
type NVMCalibration struct {
	lo, hi mmio.Register[uint32]
}

// NewNVMCalibration wraps the first two words of the calibration row.
func NewNVMCalibration(lo, hi mmio.Register[uint32]) *NVMCalibration {
	return &NVMCalibration{lo: lo, hi: hi}
}

// ADCCalibration returns the ADC linearity and bias constants.
func (n *NVMCalibration) ADCCalibration() (linearity, bias uint8) {
	return DecodeADCCalibration(n.lo.Get(), n.hi.Get())
}

// DecodeADCCalibration extracts ADC LINEARITY_CAL and BIAS_CAL from the
// first two calibration words. Linearity straddles the word boundary.
func DecodeADCCalibration(lo, hi uint32) (linearity, bias uint8) {
	linearity = uint8(lo>>calibADCLinearityPos) | uint8(hi<<(32-calibADCLinearityPos))
	bias = uint8(hi>>(calibADCBiasPos-32)) & ADC_CALIB_BIAS_Msk
	return linearity, bias
}

// EncodeADCCalibration is the inverse of DecodeADCCalibration, for building
// simulated calibration rows. Bits outside the two fields are left clear.
func EncodeADCCalibration(linearity, bias uint8) (lo, hi uint32) {
	lo = uint32(linearity) << calibADCLinearityPos
	hi = uint32(linearity)>>(32-calibADCLinearityPos) | uint32(bias&ADC_CALIB_BIAS_Msk)<<(calibADCBiasPos-32)
	return lo, hi
}
