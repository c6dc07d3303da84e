package service

import "strings"

// Messages are the fallback texts shown when the backend gives no detail.
type Messages struct {
	LoginFailed        string
	RegistrationFailed string
}

var catalog = map[string]Messages{
	"en": {
		LoginFailed:        "login failed",
		RegistrationFailed: "registration failed",
	},
	"zh-CN": {
		LoginFailed:        "登录失败",
		RegistrationFailed: "注册失败",
	},
}

// MessagesFor returns the catalog entry for locale, falling back to the
// language prefix and then to English.
func MessagesFor(locale string) Messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	lang, _, _ := strings.Cut(locale, "-")
	for k, m := range catalog {
		if base, _, _ := strings.Cut(k, "-"); strings.EqualFold(base, lang) {
			return m
		}
	}
	return catalog["en"]
}
