package mockapi

import (
	"net/http"

	"golang.org/x/text/language"
)

var langMatcher = language.NewMatcher([]language.Tag{language.English, language.Hungarian})

var messages = map[string]map[string]string{
	"en": {
		"auth.failure":       "Incorrect credentials",
		"auth.inactive":      "Account is inactive",
		"activation.failure": "Activation failure!",
		"user.notFound":      "User not found",
		"validation.failure": "Validation Failure",
		"username.required":  "Username cannot be null",
		"username.size":      "Must have min 4 and max 32 characters",
		"email.required":     "E-mail cannot be null",
		"email.invalid":      "E-mail is not valid",
		"email.inUse":        "E-mail in use",
		"password.required":  "Password cannot be null",
		"password.size":      "Password must be at least 6 characters",
		"password.pattern":   "Password must have at least 1 uppercase, 1 lowercase letter and 1 number",
		"request.malformed":  "Malformed request body",
		"user.created":       "User created",
		"account.activated":  "Account is activated",
	},
	"hu": {
		"auth.failure":       "Érvénytelen belépési adatok",
		"auth.inactive":      "A fiók nincs aktiválva",
		"activation.failure": "Aktiválási hiba!",
		"user.notFound":      "Felhasználó nem található",
		"validation.failure": "Érvénytelen adatok",
		"username.required":  "Felhasználónév nem lehet üres",
		"username.size":      "Legalább 4, legfeljebb 32 karakter",
		"email.required":     "E-mail nem lehet üres",
		"email.invalid":      "Érvénytelen e-mail cím",
		"email.inUse":        "Az e-mail cím már foglalt",
		"password.required":  "Jelszó nem lehet üres",
		"password.size":      "A jelszó legalább 6 karakter",
		"password.pattern":   "A jelszónak tartalmaznia kell kis- és nagybetűt, valamint számot",
		"request.malformed":  "Hibás kérés",
		"user.created":       "Felhasználó létrehozva",
		"account.activated":  "A fiók aktiválva",
	},
}

// langOf picks the response language from Accept-Language.
func langOf(r *http.Request) string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return "en"
	}
	_, idx, conf := langMatcher.Match(tags...)
	if conf == language.No || idx != 1 {
		return "en"
	}
	return "hu"
}

func msg(lang, key string) string {
	if s, ok := messages[lang][key]; ok {
		return s
	}
	return messages["en"][key]
}
