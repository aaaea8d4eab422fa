package constants

// DropStatus is the canonical status for rows in the drop registry.
type DropStatus string

// Stable values (store these exact strings in DB).
const (
	DropStatusFiled     DropStatus = "FILED"     // both files moved into the tree
	DropStatusRejected  DropStatus = "REJECTED"  // moved to the error folder
	DropStatusDuplicate DropStatus = "DUPLICATE" // document already filed
)
