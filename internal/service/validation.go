package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"campus-lms/backend/internal/model"
	pkgerrors "campus-lms/backend/pkg/errors"
)

// ── 部门字段校验 ──
//
// 校验只看字段本身，不访问存储；唯一性由调用方在事务内检查。

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	// notblank: 去掉首尾空白后不能为空
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

type departmentRules struct {
	Name string `validate:"notblank,max=255" label:"部门名称"`
}

type locationRules struct {
	Name    string `validate:"max=255" label:"地点名称"`
	Address string `validate:"max=255" label:"地点地址"`
}

// ValidateDepartment 校验部门名称及内嵌的待创建地点，失败时返回 ErrInvalidInput 类别的错误
func ValidateDepartment(dept *model.Department) error {
	if dept == nil {
		return pkgerrors.Wrap(pkgerrors.ErrInvalidInput, "部门不能为空")
	}
	if err := validate.Struct(departmentRules{Name: dept.Name}); err != nil {
		return validationError(err)
	}

	// 仅在需要按名称查找或创建地点时校验地点字段
	if loc := dept.Location; loc != nil && loc.ID == 0 {
		if err := validate.Struct(locationRules{Name: loc.Name, Address: loc.Address}); err != nil {
			return validationError(err)
		}
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return pkgerrors.Wrap(pkgerrors.ErrInvalidInput, "%v", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "notblank", "required":
		return pkgerrors.Wrap(pkgerrors.ErrInvalidInput, "%s不能为空", fe.Field())
	case "max":
		return pkgerrors.Wrap(pkgerrors.ErrInvalidInput, "%s长度不能超过 %s 个字符", fe.Field(), fe.Param())
	default:
		return pkgerrors.Wrap(pkgerrors.ErrInvalidInput, "%s校验失败: %s", fe.Field(), fe.Tag())
	}
}
