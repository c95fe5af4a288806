package heap

// Unit is the scalar UsedMemory divides bytes-in-use by. Binary and decimal
// prefixes are both provided.
type Unit uint64

const (
	Byte     Unit = 1
	Kilobyte Unit = 1_000
	Kibibyte Unit = 1 << 10
	Megabyte Unit = 1_000_000
	Mibibyte Unit = 1 << 20
	Gigabyte Unit = 1_000_000_000
	Gibibyte Unit = 1 << 30
)

func (u Unit) String() string {
	switch u {
	case Byte:
		return "B"
	case Kilobyte:
		return "kB"
	case Kibibyte:
		return "KiB"
	case Megabyte:
		return "MB"
	case Mibibyte:
		return "MiB"
	case Gigabyte:
		return "GB"
	case Gibibyte:
		return "GiB"
	}
	return "?"
}
