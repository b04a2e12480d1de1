package dao

import (
	"Agora/models"
	"Agora/types"
	"context"
	"fmt"

	"gorm.io/gorm"
)

const statsInsertBatch = 500

type TopicStatsDAO struct {
	Repo[models.TopicStats]
}

func NewTopicStatsDAO(db *gorm.DB) *TopicStatsDAO {
	return &TopicStatsDAO{Repo: NewRepo[models.TopicStats](db)}
}

// GetByTopicID 不存在返回 nil
func (d *TopicStatsDAO) GetByTopicID(ctx context.Context, topicID uint64) (*models.TopicStats, error) {
	return d.FindOne(ctx, "topic_id = ?", topicID)
}

// ListAll 缓存中的全部话题统计，按话题ID升序
func (d *TopicStatsDAO) ListAll(ctx context.Context) ([]*models.TopicStats, error) {
	var rows []*models.TopicStats
	err := d.Db.WithContext(ctx).Order("topic_id ASC").Find(&rows).Error
	return rows, err
}

// TopTopicIDs 当前热度排名前 n 的话题
func (d *TopicStatsDAO) TopTopicIDs(ctx context.Context, n int) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.TopicStats{}).
		Where("popularity_rank IS NOT NULL").
		Order("popularity_rank ASC, topic_id ASC").
		Limit(n).
		Pluck("topic_id", &ids).Error
	return ids, err
}

// TopByRank 按某个排名维度读取前 limit 条
func (d *TopicStatsDAO) TopByRank(ctx context.Context, rank types.RankColumn, limit int) ([]*models.TopicStats, error) {
	column := rank.DBColumn()
	if column == "" {
		return nil, fmt.Errorf("unknown rank column %q", rank)
	}
	var rows []*models.TopicStats
	err := d.Db.WithContext(ctx).
		Where(column + " IS NOT NULL").
		Order(column + " ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ReplaceAll 在一个事务里整表替换，读者要么看到旧的全集要么看到新的全集
func (d *TopicStatsDAO) ReplaceAll(ctx context.Context, rows []*models.TopicStats) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.TopicStats{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, statsInsertBatch).Error
	})
}
