package postgres

import (
	"time"

	"gorm.io/gorm"

	reconcileDatamodel "github.com/technova/leave-management/internal/core/datamodel/reconcile"
	"github.com/technova/leave-management/internal/metrics"
	"github.com/technova/leave-management/internal/reconcile"
)

// MarkerRepository implements reconcile.Recorder using GORM
type MarkerRepository struct {
	db *gorm.DB
}

func NewMarkerRepository(db *gorm.DB) reconcile.Recorder {
	return &MarkerRepository{db: db}
}

func (r *MarkerRepository) Record(entity, entityRef, action, detail string) error {
	marker := &reconcileDatamodel.Marker{
		Entity:    entity,
		EntityRef: entityRef,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(marker).Error; err != nil {
		return err
	}
	metrics.ObserveReconciliationMarker(action)
	return nil
}
