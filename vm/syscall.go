package vm

import "fmt"

// Syscall ids intercepted at the trap address. Everything else is logged
// and returns without effect.
const (
	SyscallGetKey       = 0x0eab // blocking key read
	SyscallGetKeyWaitOS = 0x12bf
	SyscallPrgmGetKeyOS = 0x0d39
	SyscallClearVRAM    = 0x0272 // Bdisp_AllClr_VRAM
	SyscallPresentVRAM  = 0x025f // Bdisp_PutDD_VRAM
)

// syscall dispatches one intercepted system call. The id arrives in R0,
// the parameters in R4..R7; afterwards the caller resumes at PR, as if
// the trap had ended in RTS.
func (em *Emulator) syscall(id uint32) error {
	param1 := em.CPU.ReadRegister(R4)

	switch id {
	case SyscallGetKey:
		key, modifier, err := em.Input.GetKey()
		if err != nil {
			return fmt.Errorf("GetKey: %w", err)
		}
		code, err := key.Serialize(modifier)
		if err != nil {
			return fmt.Errorf("GetKey: %w", err)
		}
		return em.Memory.WriteLong(param1, uint32(code), em.Display)

	case SyscallGetKeyWaitOS:
		fmt.Fprintln(em.Output, "GetKeyWait_OS")

	case SyscallPrgmGetKeyOS:
		fmt.Fprintln(em.Output, "PRGM_GetKey_OS")

	case SyscallClearVRAM:
		em.Display.Clear()

	case SyscallPresentVRAM:
		em.Display.Present(em.Memory)

	default:
		fmt.Fprintf(em.Output, "unknown syscall: 0x%04X\n", id)
	}

	return nil
}
