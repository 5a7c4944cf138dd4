package reconcile

import "time"

// Marker records a partial failure of the account/employee compensating
// sequence so operators can reconcile the two stores instead of the
// inconsistency staying silent.
type Marker struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Entity    string    `json:"entity" gorm:"not null"`
	EntityRef string    `json:"entity_ref" gorm:"column:entity_ref;not null"`
	Action    string    `json:"action" gorm:"not null"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Marker) TableName() string {
	return "reconciliation_markers"
}
