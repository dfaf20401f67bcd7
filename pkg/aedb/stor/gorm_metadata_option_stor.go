package stor

import (
	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormMetadataOptionStor reads the controlled vocabularies. Options are
// admin managed, so there is deliberately no create method here.
type GormMetadataOptionStor struct {
	db *gorm.DB
}

func NewGormMetadataOptionStor(db *gorm.DB) *GormMetadataOptionStor {
	return &GormMetadataOptionStor{db: db}
}

func (s *GormMetadataOptionStor) ListOptionsByGroup(group string) ([]aemodel.MetadataOption, error) {
	var options []aemodel.MetadataOption

	err := s.db.Where("option_group = ?", group).
		Order("position ASC, code ASC").
		Find(&options).Error
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s options", group)
	}

	return options, nil
}

func (s *GormMetadataOptionStor) GetOptionByGroupAndCode(group, code string) (*aemodel.MetadataOption, error) {
	var option aemodel.MetadataOption

	err := s.db.Where("option_group = ?", group).
		Where("code = ?", code).
		First(&option).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "getting option %s/%s", group, code)
	}

	return &option, nil
}
