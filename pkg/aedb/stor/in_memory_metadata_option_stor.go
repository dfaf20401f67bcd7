package stor

import (
	"sort"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
)

type InMemoryMetadataOptionStor struct {
	options []aemodel.MetadataOption
}

func NewInMemoryMetadataOptionStor(options []aemodel.MetadataOption) *InMemoryMetadataOptionStor {
	return &InMemoryMetadataOptionStor{options: options}
}

func (s *InMemoryMetadataOptionStor) ListOptionsByGroup(group string) ([]aemodel.MetadataOption, error) {
	var options []aemodel.MetadataOption
	for _, option := range s.options {
		if option.Group == group {
			options = append(options, option)
		}
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].Position != options[j].Position {
			return options[i].Position < options[j].Position
		}
		return options[i].Code < options[j].Code
	})
	return options, nil
}

func (s *InMemoryMetadataOptionStor) GetOptionByGroupAndCode(group, code string) (*aemodel.MetadataOption, error) {
	for i := range s.options {
		if s.options[i].Group == group && s.options[i].Code == code {
			return &s.options[i], nil
		}
	}
	return nil, ErrNotFound
}
