package service

import (
	"errors"

	"gorm.io/gorm"
)

// mapNotFound 把 gorm 的未找到错误转换为业务错误
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
