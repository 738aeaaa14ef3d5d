package locale

// Message keys. Catalog content is deliberately small.
const (
	MsgHome             = "home"
	MsgSignUp           = "signUp"
	MsgLogin            = "login"
	MsgLogout           = "logout"
	MsgUsers            = "users"
	MsgProfile          = "myProfile"
	MsgUsername         = "username"
	MsgEmail            = "email"
	MsgPassword         = "password"
	MsgPasswordRepeat   = "passwordRepeat"
	MsgPasswordMismatch = "passwordMismatchValidation"
	MsgActivationNotice = "accountActivationNotification"
	MsgAccountActivated = "accountActivationSuccess"
	MsgNext             = "nextPage"
	MsgPrevious         = "previousPage"
	MsgLoading          = "loading"
	MsgNotFound         = "pageNotFound"
	MsgRequestFailed    = "requestFailed"
	MsgRequired         = "fieldRequired"
	MsgInvalidEmail     = "emailInvalid"
	MsgHomeIntro        = "homeIntro"
	MsgLanguage         = "language"
	MsgNoUsers          = "noUsers"
	MsgPageOf           = "pageOf"
)

var catalogs = map[string]map[string]string{
	"en": {
		MsgHome:             "Home",
		MsgSignUp:           "Sign Up",
		MsgLogin:            "Login",
		MsgLogout:           "Logout",
		MsgUsers:            "Users",
		MsgProfile:          "My Profile",
		MsgUsername:         "Username",
		MsgEmail:            "E-mail",
		MsgPassword:         "Password",
		MsgPasswordRepeat:   "Password Repeat",
		MsgPasswordMismatch: "Password mismatch",
		MsgActivationNotice: "Please check your e-mail to activate your account",
		MsgAccountActivated: "Account has been activated!",
		MsgNext:             "Next",
		MsgPrevious:         "Previous",
		MsgLoading:          "Loading...",
		MsgNotFound:         "Page not found",
		MsgRequestFailed:    "Request failed, please try again",
		MsgRequired:         "This field is required",
		MsgInvalidEmail:     "E-mail is not valid",
		MsgHomeIntro:        "Browse the user directory, sign up for an account or log in.",
		MsgLanguage:         "English",
		MsgNoUsers:          "No users yet",
		MsgPageOf:           "Page %d of %d",
	},
	"hu": {
		MsgHome:             "Kezdőlap",
		MsgSignUp:           "Regisztráció",
		MsgLogin:            "Bejelentkezés",
		MsgLogout:           "Kijelentkezés",
		MsgUsers:            "Felhasználók",
		MsgProfile:          "Profilom",
		MsgUsername:         "Felhasználónév",
		MsgEmail:            "E-mail",
		MsgPassword:         "Jelszó",
		MsgPasswordRepeat:   "Jelszó megismétlése",
		MsgPasswordMismatch: "A jelszavak nem egyeznek",
		MsgActivationNotice: "Kérjük ellenőrizze e-mail fiókját a regisztráció aktiválásához",
		MsgAccountActivated: "A fiók aktiválása sikeres!",
		MsgNext:             "Következő",
		MsgPrevious:         "Előző",
		MsgLoading:          "Betöltés...",
		MsgNotFound:         "Az oldal nem található",
		MsgRequestFailed:    "A kérés sikertelen, próbálja újra",
		MsgRequired:         "Kötelező mező",
		MsgInvalidEmail:     "Érvénytelen e-mail cím",
		MsgHomeIntro:        "Böngésszen a felhasználók között, regisztráljon vagy jelentkezzen be.",
		MsgLanguage:         "Magyar",
		MsgNoUsers:          "Még nincsenek felhasználók",
		MsgPageOf:           "%d. oldal / %d",
	},
}
