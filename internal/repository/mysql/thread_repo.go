package mysql

import (
	"time"

	"Debt_BBS/internal/model"
	"Debt_BBS/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThreadRepository struct{}

// Create 建新串；如果带首条回复则在同一事务内一起插入
func (r *ThreadRepository) Create(t *model.Thread, first *model.Post) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if first != nil {
			first.ThreadID = t.ID
			if err := tx.Create(first).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ThreadRepository) FindByID(id uint64) (*model.Thread, error) {
	var t model.Thread
	err := DB.First(&t, id).Error
	return &t, err
}

func (r *ThreadRepository) List() ([]model.Thread, error) {
	var list []model.Thread
	err := DB.Order("updated_at DESC").Find(&list).Error
	return list, err
}

// AppendPost 回复编号分配和串的元数据更新放在一个事务里。
// 先 FOR UPDATE 锁住串的行再读 post_count，并发写入时编号仍然是 1..N 连续无空洞。
// sage（bump=false）时不动 updated_at。
func (r *ThreadRepository) AppendPost(post *model.Post, bump bool, now time.Time) (int, error) {
	var number int
	err := DB.Transaction(func(tx *gorm.DB) error {
		var t model.Thread
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, post.ThreadID).Error; err != nil {
			return err
		}
		if t.IsArchived || t.PostCount >= 1000 {
			return pkg.Fail(pkg.ErrThreadClosed, "このスレッドは書き込みできません")
		}

		number = t.PostCount + 1
		post.PostNumber = number
		post.CreatedAt = now
		if err := tx.Create(post).Error; err != nil {
			return err
		}

		cols := map[string]any{"post_count": number}
		if bump {
			cols["updated_at"] = now
		}
		if number >= 1000 {
			cols["is_archived"] = true
		}
		// UpdateColumns 绕过 gorm 自动刷新 updated_at
		return tx.Model(&model.Thread{}).Where("id = ?", t.ID).UpdateColumns(cols).Error
	})
	if err != nil {
		return 0, err
	}
	return number, nil
}

// Delete 删串时级联物理删除回复；串不存在也视为成功（幂等）
func (r *ThreadRepository) Delete(id uint64) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Thread{}, id).Error
	})
}
