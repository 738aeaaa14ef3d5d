// Package locale tracks the active language, persisted under the "lang" key.
package locale

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"userdir-cli/internal/store"
)

const Default = "en"

var (
	supportedTags = []language.Tag{language.English, language.Hungarian}
	supportedCode = []string{"en", "hu"}
	matcher       = language.NewMatcher(supportedTags)
)

// Supported returns the locale codes in display order.
func Supported() []string {
	return append([]string(nil), supportedCode...)
}

// Normalize maps any BCP 47 tag ("hu-HU", "en_GB") onto a supported code.
func Normalize(code string) (string, error) {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return "", fmt.Errorf("locale: empty code")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("locale: %w", err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("locale: unsupported language %q (supported: %s)", code, strings.Join(supportedCode, ", "))
	}
	return supportedCode[idx], nil
}

// Manager owns the active locale. Every change is written to the store before it takes effect.
type Manager struct {
	kv store.KV

	mu        sync.Mutex
	current   string
	listeners []func(string)
}

func NewManager(kv store.KV) *Manager {
	return &Manager{kv: kv, current: Default}
}

// Load reads the persisted locale; missing or unsupported values fall back to fallback (or Default).
func (m *Manager) Load(fallback string) (string, error) {
	code := ""
	var stored string
	if m.kv.Get(store.KeyLang, &stored) {
		if c, err := Normalize(stored); err == nil {
			code = c
		}
	}
	if code == "" {
		if c, err := Normalize(fallback); err == nil {
			code = c
		} else {
			code = Default
		}
	}
	return code, m.apply(code)
}

func (m *Manager) Set(code string) error {
	c, err := Normalize(code)
	if err != nil {
		return err
	}
	return m.apply(c)
}

// Reset returns to Default.
func (m *Manager) Reset() error {
	return m.apply(Default)
}

// Toggle cycles through Supported and returns the new code.
func (m *Manager) Toggle() (string, error) {
	cur := m.Current()
	next := supportedCode[0]
	for i, c := range supportedCode {
		if c == cur {
			next = supportedCode[(i+1)%len(supportedCode)]
			break
		}
	}
	return next, m.apply(next)
}

func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// OnChange registers fn to run after each change.
func (m *Manager) OnChange(fn func(string)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// T looks up key in the active catalog, falling back to English and then to the key itself.
func (m *Manager) T(key string) string {
	return Lookup(m.Current(), key)
}

func Lookup(code, key string) string {
	if s, ok := catalogs[code][key]; ok {
		return s
	}
	if s, ok := catalogs[Default][key]; ok {
		return s
	}
	return key
}

func (m *Manager) apply(code string) error {
	if err := m.kv.Set(store.KeyLang, code); err != nil {
		return fmt.Errorf("persist locale: %w", err)
	}
	m.mu.Lock()
	m.current = code
	ls := slices.Clone(m.listeners)
	m.mu.Unlock()
	for _, fn := range ls {
		fn(code)
	}
	return nil
}
