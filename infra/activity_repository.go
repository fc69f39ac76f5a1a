package infra

import (
	"context"

	"github.com/goldenbridge/bankapi/pkg/domain/activity"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

// Record appends one audit row. The table is insert-only; nothing in the
// codebase updates or deletes activities.
func (r *activityRepository) Record(ctx context.Context, a *activity.Activity) error {
	return r.db.WithContext(ctx).Create(activityModel(a)).Error
}

func (r *activityRepository) List(ctx context.Context) ([]*activity.WithAdmin, error) {
	type row struct {
		Activity
		AdminName string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Activity{}).
		Select("activities.*, admin_users.full_name AS admin_name").
		Joins("JOIN admin_users ON admin_users.id = activities.admin_id").
		Order("activities.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*activity.WithAdmin, 0, len(rows))
	for i := range rows {
		out = append(out, &activity.WithAdmin{
			Activity: activity.Activity{
				ID:         rows[i].ID,
				AdminID:    rows[i].AdminID,
				Action:     rows[i].Action,
				TargetType: rows[i].TargetType,
				TargetID:   rows[i].TargetID,
				Details:    rows[i].Details,
				CreatedAt:  rows[i].CreatedAt,
			},
			AdminName: rows[i].AdminName,
		})
	}
	return out, nil
}
