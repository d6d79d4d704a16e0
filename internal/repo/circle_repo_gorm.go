package repo

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-circle-api/internal/domain"
	"go-circle-api/internal/feature/circle"
)

// CircleRepo 一个聚合 = circles 一行 + members 多行。
// 写操作全部走单个事务，避免聚合写一半（owner 行缺失的圈子读不出来）。
type CircleRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCircleRepo(db *gorm.DB, l *zap.Logger) *CircleRepo {
	if l == nil {
		l = zap.NewNop()
	}
	return &CircleRepo{db: db, log: l}
}

var _ domain.CircleRepository = (*CircleRepo)(nil)

func (r *CircleRepo) FindByID(ctx context.Context, id domain.CircleID) (*domain.Circle, error) {
	var cm circle.CircleModel
	err := r.db.WithContext(ctx).First(&cm, "id = ?", int(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Error("fetch circle row failed", zap.Int("circle_id", int(id)), zap.Error(err))
		return nil, fmt.Errorf("find circle %d: %w", id, err)
	}

	var rows []circle.MemberModel
	if err := r.db.WithContext(ctx).Where("circle_id = ?", cm.ID).Find(&rows).Error; err != nil {
		r.log.Error("fetch member rows failed", zap.Int("circle_id", cm.ID), zap.Error(err))
		return nil, fmt.Errorf("find members of circle %d: %w", id, err)
	}
	return circle.FromRows(cm, rows)
}

// Create 先插 circles 行，拿到 owner 行的自增 ID 后再回写 owner_id
func (r *CircleRepo) Create(ctx context.Context, c *domain.Circle) (*domain.Circle, error) {
	cm, rows := circle.ToRows(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cm).Error; err != nil {
			return fmt.Errorf("insert circle: %w", err)
		}
		for i := range rows {
			rows[i].CircleID = cm.ID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return fmt.Errorf("insert member %q: %w", rows[i].Name, err)
			}
		}
		cm.OwnerID = rows[0].ID
		if err := tx.Model(&circle.CircleModel{}).Where("id = ?", cm.ID).
			Update("owner_id", cm.OwnerID).Error; err != nil {
			return fmt.Errorf("set owner_id: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("create circle failed", zap.String("name", c.Name), zap.Error(err))
		return nil, err
	}
	return circle.FromRows(cm, rows)
}

// Update 不做 diff：更新 circles 行后整组删掉重插 members。
// 重插保留已有 ID，新成员拿自增 ID 并回填到聚合里。
func (r *CircleRepo) Update(ctx context.Context, c *domain.Circle) error {
	cm, rows := circle.ToRows(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&circle.CircleModel{}).Where("id = ?", cm.ID).
			Updates(map[string]any{
				"name":     cm.Name,
				"owner_id": cm.OwnerID,
				"capacity": cm.Capacity,
			}).Error; err != nil {
			return fmt.Errorf("update circle row: %w", err)
		}
		if err := tx.Where("circle_id = ?", cm.ID).Delete(&circle.MemberModel{}).Error; err != nil {
			return fmt.Errorf("delete member rows: %w", err)
		}
		for i := range rows {
			rows[i].CircleID = cm.ID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return fmt.Errorf("reinsert member %q: %w", rows[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("update circle failed", zap.Int("circle_id", cm.ID), zap.Error(err))
		return err
	}
	c.Owner.ID = domain.MemberID(rows[0].ID)
	for i := range c.Members {
		c.Members[i].ID = domain.MemberID(rows[i+1].ID)
	}
	return nil
}

// Delete 先删 members 再删 circles，避免留下孤儿成员行
func (r *CircleRepo) Delete(ctx context.Context, c *domain.Circle) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("circle_id = ?", int(c.ID)).Delete(&circle.MemberModel{}).Error; err != nil {
			return fmt.Errorf("delete member rows: %w", err)
		}
		if err := tx.Delete(&circle.CircleModel{}, "id = ?", int(c.ID)).Error; err != nil {
			return fmt.Errorf("delete circle row: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("delete circle failed", zap.Int("circle_id", int(c.ID)), zap.Error(err))
	}
	return err
}
