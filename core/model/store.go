package model

// TableReader loads a persisted table.
type TableReader interface {
	Read(path string) (Table, error)
}

// TableStore persists tables. Copy duplicates a stored table without
// re-encoding it.
type TableStore interface {
	TableReader
	Write(path string, t Table) error
	Copy(src, dst string) error
}
