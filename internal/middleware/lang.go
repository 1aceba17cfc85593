package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pl"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Lang selects the validator translator for the request from the
// Accept-Language header. Supported: en, pl.
func Lang() gin.HandlerFunc {
	enLocale := en.New()
	plLocale := pl.New()
	uni := ut.New(enLocale, enLocale, plLocale)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		for _, locale := range []string{"en", "pl"} {
			if trans, found := uni.GetTranslator(locale); found {
				_ = en_translations.RegisterDefaultTranslations(v, trans)
			}
		}
	}

	return func(c *gin.Context) {
		locale := parseLocale(c.GetHeader("Accept-Language"))
		trans, _ := uni.GetTranslator(locale)

		c.Set("locale", locale)
		c.Set("trans", trans)
		c.Next()
	}
}

func parseLocale(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	if strings.HasPrefix(header, "pl") {
		return "pl"
	}
	return "en"
}
