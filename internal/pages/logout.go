package pages

type SessionResetter interface {
	Reset() error
}

// Logout clears the session and returns to the home page.
func Logout(sess SessionResetter, nav Navigator) error {
	if err := sess.Reset(); err != nil {
		return err
	}
	if nav != nil {
		nav.Navigate("/")
	}
	return nil
}
