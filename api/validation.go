package api

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 注册自定义校验规则，需在路由初始化前调用
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("employee_code", validEmployeeCode)
}

// validEmployeeCode 工牌编号会出现在扫码接口的 URL 中，不允许空白、控制字符以及 ? #
func validEmployeeCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" || strings.ContainsAny(code, "?#") {
		return false
	}
	for _, r := range code {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
