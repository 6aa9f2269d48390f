package storage

// constraint identifies which storage-level rule rejected a write
type constraint int

const (
	constraintNone constraint = iota
	constraintUnique
	constraintForeignKey
)
