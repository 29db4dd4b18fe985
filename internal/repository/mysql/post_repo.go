package mysql

import (
	"Debt_BBS/internal/model"
)

type PostRepository struct{}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := DB.First(&post, id).Error
	return &post, err
}

// ListByThread 按楼层号升序返回整串回复（含墓碑行，楼层连续性靠它们撑着）
func (r *PostRepository) ListByThread(threadID uint64) ([]model.Post, error) {
	var list []model.Post
	err := DB.
		Where("thread_id = ?", threadID).
		Order("post_number ASC").
		Find(&list).Error
	return list, err
}

// LogicalDelete 逻辑删除：只翻标记不删行。返回受影响行数，0 表示本来就删了或不存在
func (r *PostRepository) LogicalDelete(id uint64) (int64, error) {
	tx := DB.Model(&model.Post{}).
		Where("id = ? AND is_deleted = false", id).
		Update("is_deleted", true)
	return tx.RowsAffected, tx.Error
}
