package domain

// ChangeKind classifies a logical filesystem change.
type ChangeKind uint8

const (
	// ChangeChanged means an existing file's content was modified.
	ChangeChanged ChangeKind = iota
	// ChangeAdded means a file appeared.
	ChangeAdded
	// ChangeRemoved means a file disappeared.
	ChangeRemoved
)

// String returns a human-readable kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	default:
		return "changed"
	}
}

// ChangeEvent is one normalized, deduplicated filesystem change.
// Ordering across distinct identifiers within a batch carries no
// meaning; duplicate identifiers are coalesced before delivery.
type ChangeEvent struct {
	ID   ResourceID
	Kind ChangeKind
}
