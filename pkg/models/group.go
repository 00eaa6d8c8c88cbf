package models

// MergeGroup is one usable input row: the record to keep plus the duplicates
// to fold into it. Child order is as given in the file; it only matters for
// logging.
type MergeGroup struct {
	Line     int      `json:"line"`
	MasterID string   `json:"master_id"`
	ChildIDs []string `json:"child_ids"`
}
