package registry

// Trigger bitsets decide which lifecycle events act on an entry. The
// zero value of each set is the manual sentinel: automatic dispatch
// never matches it, only the dedicated manual-flush APIs do.

type SaveTrigger uint8

const (
	SaveManual     SaveTrigger = 0
	SaveOnSave     SaveTrigger = 1 << 0
	SaveOnAutoSave SaveTrigger = 1 << 1
)

func (t SaveTrigger) Has(bit SaveTrigger) bool {
	return bit != 0 && t&bit == bit
}

func (t SaveTrigger) Manual() bool { return t == SaveManual }

type LoadTrigger uint8

const (
	LoadManual     LoadTrigger = 0
	LoadOnLoad     LoadTrigger = 1 << 0
	LoadOnRegister LoadTrigger = 1 << 1
)

func (t LoadTrigger) Has(bit LoadTrigger) bool {
	return bit != 0 && t&bit == bit
}

func (t LoadTrigger) Manual() bool { return t == LoadManual }

type ResetTrigger uint8

const (
	ResetManual     ResetTrigger = 0
	ResetOnGameOver ResetTrigger = 1 << 0
)

func (t ResetTrigger) Has(bit ResetTrigger) bool {
	return bit != 0 && t&bit == bit
}

func (t ResetTrigger) Manual() bool { return t == ResetManual }

// StoreTarget selects which logical store an entry persists to.
type StoreTarget uint8

const (
	TargetCurrentSave StoreTarget = iota
	TargetGlobal
)

func (t StoreTarget) String() string {
	switch t {
	case TargetCurrentSave:
		return "current-save"
	case TargetGlobal:
		return "global"
	default:
		return "unknown"
	}
}
