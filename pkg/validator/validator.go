package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"bnb-wallet/pkg/unit"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Init 注册自定义校验规则到 gin 的 binding 引擎 (同一个 go-playground/validator 实例)
func Init() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		validate = v

		// decimal.Decimal 按数值参与 gt/gte 等比较
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("gasprice", validateGasPrice)
	})
}

// gasprice: 空, 档位名 (区分大小写), 或 hex wei 值。不做 trim，与 bnb.ResolveGasPrice 的判断保持一致
func validateGasPrice(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	switch s {
	case "", "rapid", "fast", "standard":
		return true
	}
	return unit.IsHex(s)
}

// GetErrorMsg translates validation errors into user-friendly messages
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var errMsgs []string
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			switch tag {
			case "required":
				errMsgs = append(errMsgs, fmt.Sprintf("%s 不能为空", field))
			case "eth_addr":
				errMsgs = append(errMsgs, fmt.Sprintf("%s 不是合法的地址", field))
			case "gt":
				errMsgs = append(errMsgs, fmt.Sprintf("%s 必须大于 %s", field, param))
			case "gasprice":
				errMsgs = append(errMsgs, fmt.Sprintf("%s 必须是 rapid/fast/standard 或 hex 数值", field))
			case "oneof":
				errMsgs = append(errMsgs, fmt.Sprintf("%s 必须是 [%s] 之一", field, param))
			default:
				errMsgs = append(errMsgs, fmt.Sprintf("%s 校验失败 (%s)", field, tag))
			}
		}
		return strings.Join(errMsgs, "; ")
	}
	return "请求参数错误"
}
