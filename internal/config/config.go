/*
Package config implements the TOML settings file for transheet.

Settings are resolved once per command: an explicit path wins, then the
TRANSHEET_CONFIG environment variable, then ./transheet.toml if it exists.
With none of those, Default() is used as is.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/danieljhkim/transheet/internal/logging"
)

const (
	// EnvConfig names the settings file when no --config flag is given.
	EnvConfig = "TRANSHEET_CONFIG"

	// LocalFile is picked up from the working directory when present.
	LocalFile = "transheet.toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid settings")

// Settings is the parsed settings file.
type Settings struct {
	Documents DocumentsConfig `toml:"documents"`
	Sheet     SheetConfig     `toml:"sheet"`
	CSV       CSVConfig       `toml:"csv"`
	Import    ImportConfig    `toml:"import"`
	Log       LogConfig       `toml:"log"`
}

// DocumentsConfig controls the per-(domain, locale) documents.
type DocumentsConfig struct {
	// Extension of document files, without the dot.
	Extension string `toml:"extension"`
	// Indent is the number of spaces per nesting level when encoding.
	Indent int `toml:"indent"`
}

// SheetConfig controls XLSX tables.
type SheetConfig struct {
	// Name of the worksheet to read or write. Empty means the first sheet.
	Name string `toml:"name"`
}

// CSVConfig controls CSV tables.
type CSVConfig struct {
	Delimiter string `toml:"delimiter"`
	// BOM prefixes written files with a UTF-8 byte order mark.
	BOM bool `toml:"bom"`
}

// ImportConfig holds defaults for table -> documents conversions.
type ImportConfig struct {
	IncludeEmpty bool `toml:"include_empty"`
}

// LogConfig holds the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is found.
func Default() Settings {
	return Settings{
		Documents: DocumentsConfig{
			Extension: "yaml",
			Indent:    4,
		},
		CSV: CSVConfig{
			Delimiter: ",",
		},
	}
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c CSVConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// ValidateExtension checks a document extension given without its dot.
func ValidateExtension(ext string) error {
	if ext == "" || strings.ContainsAny(ext, `./\ `) {
		return fmt.Errorf("%w: extension %q must be a bare extension such as \"yaml\"", ErrInvalid, ext)
	}
	return nil
}

// valid checks the settings in their current state.
func (s *Settings) valid() error {
	if err := ValidateExtension(s.Documents.Extension); err != nil {
		return fmt.Errorf("documents: %w", err)
	}
	if s.Documents.Indent < 2 || s.Documents.Indent > 8 {
		return fmt.Errorf("%w: documents.indent must be between 2 and 8, got %d", ErrInvalid, s.Documents.Indent)
	}
	if utf8.RuneCountInString(s.CSV.Delimiter) != 1 {
		return fmt.Errorf("%w: csv.delimiter must be a single character, got %q", ErrInvalid, s.CSV.Delimiter)
	}
	switch s.CSV.DelimiterRune() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("%w: csv.delimiter %q is not allowed", ErrInvalid, s.CSV.Delimiter)
	}
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Load reads settings from a TOML file on top of Default and checks them.
// Unknown keys are rejected.
func Load(file string) (Settings, error) {
	conf := Default()
	md, err := toml.DecodeFile(file, &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to read settings %s: %w", file, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return conf, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, file, strings.Join(keys, ", "))
	}

	if err := conf.valid(); err != nil {
		return conf, err
	}
	return conf, nil
}

// ResolvePath returns the settings file to load and whether there is one.
// The explicit path has the highest priority, then EnvConfig, then
// LocalFile in the working directory.
func ResolvePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	if info, err := os.Stat(LocalFile); err == nil && !info.IsDir() {
		return LocalFile, true
	}
	return "", false
}

// Resolve loads the settings file picked by ResolvePath, or returns Default
// when there is none.
func Resolve(explicit string) (Settings, error) {
	path, ok := ResolvePath(explicit)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
