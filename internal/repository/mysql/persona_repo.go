package mysql

import (
	"time"

	"Debt_BBS/internal/model"
)

type PersonaRepository struct{}

func (r *PersonaRepository) List() ([]model.Persona, error) {
	var list []model.Persona
	err := DB.Order("id").Find(&list).Error
	return list, err
}

func (r *PersonaRepository) FindByID(id uint64) (*model.Persona, error) {
	var p model.Persona
	err := DB.First(&p, id).Error
	return &p, err
}

// EnsureDefaults 表为空时种入默认的人格目录
func (r *PersonaRepository) EnsureDefaults() error {
	var count int64
	if err := DB.Model(&model.Persona{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now()
	defaults := []model.Persona{
		{Name: "通りすがり", Description: "たまたま通りかかった風の住民", CreatedAt: now},
		{Name: "事情通", Description: "内部事情に詳しい風の住民", CreatedAt: now},
		{Name: "古参住民", Description: "スレに長く居着いている風の住民", CreatedAt: now},
	}
	return DB.Create(&defaults).Error
}
