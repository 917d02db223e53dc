package engine

import "fmt"

// MemClass identifies an engine working-buffer category. The per-class
// maximum size varies with the test vector file and is discovered
// empirically through Host.Realloc.
type MemClass int

const (
	MemSVFCommandBuf MemClass = iota
	MemSVFSDRTDIData
	MemSVFSDRTDIMask
	MemSVFSDRTDOData
	MemSVFSDRTDOMask
	MemSVFSDRRetMask
	MemSVFSIRTDIData
	MemSVFSIRTDIMask
	MemSVFSIRTDOData
	MemSVFSIRTDOMask
	MemXSVFTDIData
	MemXSVFTDOData
	MemXSVFTDOMask
	MemXSVFAddrMask
	MemXSVFDataMask

	// MemNum bounds the class space.
	MemNum
)

var memNames = [MemNum]string{
	"svf_commandbuf",
	"svf_sdr_tdi_data",
	"svf_sdr_tdi_mask",
	"svf_sdr_tdo_data",
	"svf_sdr_tdo_mask",
	"svf_sdr_ret_mask",
	"svf_sir_tdi_data",
	"svf_sir_tdi_mask",
	"svf_sir_tdo_data",
	"svf_sir_tdo_mask",
	"xsvf_tdi_data",
	"xsvf_tdo_data",
	"xsvf_tdo_mask",
	"xsvf_addr_mask",
	"xsvf_data_mask",
}

func (c MemClass) String() string {
	if c >= 0 && c < MemNum {
		return memNames[c]
	}
	return fmt.Sprintf("mem_%d", int(c))
}
