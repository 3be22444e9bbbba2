// Package samd21 describes the SAMD21 peripherals the drivers in this module
// touch: register layouts, bit positions, the peripheral ownership model and
// the small clock/power/calibration collaborators the drivers are built on.
//
// Datasheet: SAM D21/DA1 Family Data Sheet (DS40001882).
package samd21

// Peripheral base addresses.
const (
	basePM     = 0x40000400
	baseGCLK   = 0x40000C00
	baseSERCOM = 0x42000800 // SERCOMn at baseSERCOM + n*0x400
	baseADC    = 0x42004000

	// NVM software calibration row.
	addrNVMCalib = 0x00806020
)

// PM.APBCMASK.
const (
	PM_APBCMASK_SERCOM0 = 1 << 2 // SERCOMn at bit 2+n
	PM_APBCMASK_ADC     = 1 << 16
)

// GCLK.
const (
	GCLK_STATUS_SYNCBUSY = 1 << 7

	GCLK_CLKCTRL_ID_Msk  = 0x3F
	GCLK_CLKCTRL_GEN_Pos = 8
	GCLK_CLKCTRL_GEN_Msk = 0xF
	GCLK_CLKCTRL_CLKEN   = 1 << 14

	// Generic clock channel IDs.
	GCLK_ID_SERCOM0_CORE = 0x14 // SERCOMn at 0x14+n
	GCLK_ID_ADC          = 0x1E

	// Generator 0 is the main clock, always running after reset.
	GCLK_GEN0 = 0
)

// ADC registers.
const (
	ADC_CTRLA_SWRST  = 1 << 0
	ADC_CTRLA_ENABLE = 1 << 1

	ADC_REFCTRL_REFSEL_Msk     = 0xF
	ADC_REFCTRL_REFSEL_INT1V   = 0x0
	ADC_REFCTRL_REFSEL_INTVCC0 = 0x1
	ADC_REFCTRL_REFSEL_INTVCC1 = 0x2 // VDDANA/2

	ADC_AVGCTRL_SAMPLENUM_Msk = 0xF
	ADC_AVGCTRL_SAMPLENUM_1   = 0x0

	ADC_CTRLB_RESSEL_Pos      = 4
	ADC_CTRLB_RESSEL_Msk      = 0x3
	ADC_CTRLB_RESSEL_12BIT    = 0x0
	ADC_CTRLB_PRESCALER_Pos   = 8
	ADC_CTRLB_PRESCALER_Msk   = 0x7
	ADC_CTRLB_PRESCALER_DIV32 = 0x3

	ADC_SWTRIG_FLUSH = 1 << 0
	ADC_SWTRIG_START = 1 << 1

	ADC_INPUTCTRL_MUXPOS_Pos  = 0
	ADC_INPUTCTRL_MUXPOS_Msk  = 0x1F
	ADC_INPUTCTRL_MUXNEG_Pos  = 8
	ADC_INPUTCTRL_MUXNEG_Msk  = 0x1F
	ADC_INPUTCTRL_MUXNEG_GND  = 0x18
	ADC_INPUTCTRL_GAIN_Pos    = 24
	ADC_INPUTCTRL_GAIN_Msk    = 0xF
	ADC_INPUTCTRL_GAIN_1X     = 0x0
	ADC_INPUTCTRL_GAIN_DIV2   = 0xF
	ADC_INPUTCTRL_MUXPOS_PIN0 = 0x00
	ADC_INPUTCTRL_MUXPOS_PIN2 = 0x02
	ADC_INPUTCTRL_MUXPOS_PIN3 = 0x03

	ADC_INTFLAG_RESRDY  = 1 << 0
	ADC_INTFLAG_OVERRUN = 1 << 1

	ADC_STATUS_SYNCBUSY = 1 << 7

	ADC_CALIB_LINEARITY_Msk = 0xFF
	ADC_CALIB_BIAS_Pos      = 8
	ADC_CALIB_BIAS_Msk      = 0x7
)

// SERCOM in I2C slave mode. BUSSTATE is written through the I2C master view
// of STATUS, which shares the address.
const (
	SERCOM_I2CS_CTRLA_SWRST         = 1 << 0
	SERCOM_I2CS_CTRLA_ENABLE        = 1 << 1
	SERCOM_I2CS_CTRLA_MODE_Pos      = 2
	SERCOM_I2CS_CTRLA_MODE_Msk      = 0x7
	SERCOM_I2CS_CTRLA_MODE_I2CSLAVE = 0x4

	SERCOM_I2CS_CTRLB_SMEN    = 1 << 8
	SERCOM_I2CS_CTRLB_CMD_Pos = 16
	SERCOM_I2CS_CTRLB_CMD_Msk = 0x3
	SERCOM_I2CS_CTRLB_ACKACT  = 1 << 18
	SERCOM_I2CS_CMD_RESPOND   = 0x3 // ACK/NACK per ACKACT, then wait for next event

	SERCOM_I2CS_ADDR_ADDR_Pos     = 1
	SERCOM_I2CS_ADDR_ADDR_Msk     = 0x3FF
	SERCOM_I2CS_ADDR_ADDRMASK_Pos = 17
	SERCOM_I2CS_ADDR_ADDRMASK_Msk = 0x3FF

	SERCOM_I2CS_INT_PREC   = 1 << 0
	SERCOM_I2CS_INT_AMATCH = 1 << 1
	SERCOM_I2CS_INT_DRDY   = 1 << 2
	SERCOM_I2CS_INT_ERROR  = 1 << 7

	SERCOM_I2CS_STATUS_BUSERR = 1 << 0
	SERCOM_I2CS_STATUS_COLL   = 1 << 1
	SERCOM_I2CS_STATUS_RXNACK = 1 << 2
	SERCOM_I2CS_STATUS_DIR    = 1 << 3

	SERCOM_I2CM_STATUS_BUSSTATE_Pos  = 4
	SERCOM_I2CM_STATUS_BUSSTATE_Msk  = 0x3
	SERCOM_I2CM_STATUS_BUSSTATE_IDLE = 0x1

	SERCOM_SYNCBUSY_SWRST  = 1 << 0
	SERCOM_SYNCBUSY_ENABLE = 1 << 1
	SERCOM_SYNCBUSY_SYSOP  = 1 << 2
)

// Interrupt numbers (NVIC).
const (
	IRQ_SERCOM0 = 9 // SERCOMn at 9+n
	IRQ_ADC     = 23
)

// SercomCount is the number of SERCOM blocks on the G18A package.
const SercomCount = 6
