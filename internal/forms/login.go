package forms

import (
	"net/http"
	"strings"
)

// LoginForm holds submitted credentials. Credential verification itself is
// the account service's job so a failure never reveals which field was wrong.
type LoginForm struct {
	Username string
	Password string
}

// ParseLoginForm reads a login POST into a LoginForm.
func ParseLoginForm(r *http.Request) (*LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}, nil
}

// Validate checks only that both fields were submitted.
func (f *LoginForm) Validate() *Errors {
	verrs := NewErrors()
	if f.Username == "" {
		verrs.AddField("username", "This field is required.")
	}
	if f.Password == "" {
		verrs.AddField("password", "This field is required.")
	}
	return verrs
}
