package models

// Record is a bibliographic record as seen by the batch driver: just enough
// metadata to validate a merge group and report on it. The catalog owns
// everything else about the record.
type Record struct {
	ID            string `db:"id" json:"id"`
	FrameworkCode string `db:"framework_code" json:"framework_code"`
	Title         string `db:"title" json:"title"`
	ItemCount     int    `db:"item_count" json:"item_count"`
}

// User is the identity merges are attributed to in the catalog's audit log.
type User struct {
	ID          string `db:"id" json:"id"`
	DisplayName string `db:"display_name" json:"display_name"`
}
