package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"campus-lms/backend/internal/model"
	pkgerrors "campus-lms/backend/pkg/errors"
)

func TestValidateDepartment(t *testing.T) {
	tests := []struct {
		name    string
		dept    *model.Department
		wantErr bool
		wantMsg string
	}{
		{"合法", &model.Department{Name: "Math"}, false, ""},
		{"255 个中文字符", &model.Department{Name: strings.Repeat("部", 255)}, false, ""},
		{"nil", nil, true, "部门不能为空"},
		{"空名称", &model.Department{Name: ""}, true, "部门名称不能为空"},
		{"空白名称", &model.Department{Name: " \t"}, true, "部门名称不能为空"},
		{"名称过长", &model.Department{Name: strings.Repeat("a", 256)}, true, "部门名称长度不能超过 255 个字符"},
		{
			"待创建地点名称过长",
			&model.Department{Name: "Math", Location: &model.Location{Name: strings.Repeat("a", 256)}},
			true, "地点名称长度不能超过 255 个字符",
		},
		{
			"已有地点只校验 ID",
			&model.Department{Name: "Math", Location: &model.Location{ID: 1, Name: strings.Repeat("a", 256)}},
			false, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDepartment(tt.dept)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
