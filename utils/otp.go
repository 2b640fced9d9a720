package utils

import "github.com/nanorand/nanorand"

// GenerateOtp генерирует четырехзначный одноразовый код
func GenerateOtp() (string, error) {
	return nanorand.Gen(4)
}
