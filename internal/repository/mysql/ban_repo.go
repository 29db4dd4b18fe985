package mysql

import (
	"Debt_BBS/internal/model"
)

type BanRepository struct{}

// Create ip_address 有唯一索引，重复插入由调用方映射为 DuplicateBan
func (r *BanRepository) Create(b *model.BannedIP) error {
	return DB.Create(b).Error
}

func (r *BanRepository) FindByAddress(addr string) (*model.BannedIP, error) {
	var b model.BannedIP
	err := DB.Where("ip_address = ?", addr).First(&b).Error
	return &b, err
}

func (r *BanRepository) List() ([]model.BannedIP, error) {
	var list []model.BannedIP
	err := DB.Order("created_at DESC").Find(&list).Error
	return list, err
}

// Delete 幂等硬删除，不存在也返回成功
func (r *BanRepository) Delete(id uint64) error {
	tx := DB.Delete(&model.BannedIP{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	return nil
}
