package identity

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// loginInput is validated before any credentials leave the device.
type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func validLoginInput(email, password string) error {
	return validate.Struct(loginInput{Email: email, Password: password})
}
