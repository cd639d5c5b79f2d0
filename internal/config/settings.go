package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/robco-termlink/wastelandhub/internal/model"
)

// ErrUnknownKey is returned by Set for a key that is not a setting.
var ErrUnknownKey = errors.New("unknown setting")

// Load reads settings from path. The returned settings are always usable:
// a missing file yields defaults and a nil error, while an unreadable or
// malformed file yields defaults together with the reason it was ignored.
func Load(path string) (model.Settings, error) {
	defaults := model.DefaultSettings()
	if path == "" {
		return defaults, errors.New("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, errors.Wrap(err, "read config")
	}
	s := model.DefaultSettings()
	if err := json.Unmarshal(b, &s); err != nil {
		return defaults, errors.Wrap(err, "parse config json")
	}
	if s.TypewriterCPS <= 0 {
		s.TypewriterCPS = defaults.TypewriterCPS
	}
	return s, nil
}

// Save writes settings to path as indented JSON, creating the parent
// directory when needed.
func Save(path string, s model.Settings) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "mkdir config dir")
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	tmp, err := os.CreateTemp(dir, "config-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp config")
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "write config")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close config")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "replace config")
	}
	return nil
}

type setter func(s *model.Settings, value string) error

var setters = map[string]setter{
	"typewriter_cps": func(s *model.Settings, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrap(err, "typewriter_cps")
		}
		if n <= 0 {
			return errors.New("typewriter_cps must be > 0")
		}
		s.TypewriterCPS = n
		return nil
	},
	"terminal_difficulty": func(s *model.Settings, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrap(err, "terminal_difficulty")
		}
		s.TerminalDifficulty = n
		return nil
	},
	"default_user": func(s *model.Settings, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return errors.New("default_user must not be empty")
		}
		s.DefaultUser = value
		return nil
	},
	"theme": func(s *model.Settings, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return errors.New("theme must not be empty")
		}
		s.Theme = value
		return nil
	},
	"enable_sound": func(s *model.Settings, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(err, "enable_sound")
		}
		s.EnableSound = b
		return nil
	},
	"auto_save_logs": func(s *model.Settings, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(err, "auto_save_logs")
		}
		s.AutoSaveLogs = b
		return nil
	},
}

// Set parses value and assigns it to the setting named by its JSON key.
func Set(s *model.Settings, key, value string) error {
	fn, ok := setters[strings.TrimSpace(key)]
	if !ok {
		return errors.Wrapf(ErrUnknownKey, "%q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return fn(s, value)
}

// Keys returns the settable keys sorted alphabetically.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
