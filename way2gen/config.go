package way2gen

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/cyuria/way2/way2gen/format"
	"github.com/cyuria/way2/way2gen/provider"
)

// Config holds the configuration for a generation run.
type Config struct {
	// OutDir is the directory the units are written to.
	// Required unless DryRun is set.
	OutDir string `toml:"out_dir" validate:"required_unless=DryRun true"`

	// Roots are the protocol tree roots searched for documents, in order.
	// e.g. []string{"/usr/share/wayland", "/usr/share/wayland-protocols"}
	Roots []string `toml:"roots" validate:"min=1,dive,required"`

	// DryRun compiles and formats every unit in memory and writes nothing.
	DryRun bool `toml:"-"`

	// Formatter is the pretty-printer command line. Units are piped to its
	// stdin and read back from its stdout.
	// Default: zig fmt --stdin
	Formatter []string `toml:"formatter" validate:"required_unless=NoFormat true"`

	// NoFormat writes units exactly as emitted.
	NoFormat bool `toml:"no_format"`

	// Format replaces the formatter command, mainly for tests and
	// embedding. It is ignored when NoFormat is set.
	Format format.Formatter `toml:"-" validate:"-"`

	// OnMismatch decides what happens to XML documents whose root element
	// is not <protocol>: "skip" (default), "warn" or "error".
	OnMismatch provider.MismatchPolicy `toml:"on_mismatch" validate:"oneof=skip warn error"`

	// SkipInterfaces are left out of every unit and the index.
	// e.g. []string{"wl_shell", "wl_shell_surface"}
	SkipInterfaces []string `toml:"skip_interfaces" validate:"dive,required"`

	// TypeMappings overrides the Zig type of primitive argument kinds.
	// e.g. map[string]string{"fixed": "types.Fixed"}
	TypeMappings map[string]string `toml:"type_mappings" validate:"dive,keys,oneof=int uint fixed object new_id string array,endkeys,required"`

	// TypesUnit and IndexUnit name the shared units, without extension.
	TypesUnit string `toml:"types_unit" validate:"required,unitname,nefield=IndexUnit"`
	IndexUnit string `toml:"index_unit" validate:"required,unitname"`

	// EventsOnlyIndex leaves the Requests union out of the index unit.
	EventsOnlyIndex bool `toml:"events_only_index"`

	// IndentSize is the indent width of emitted source before formatting.
	IndentSize int `toml:"indent_size" validate:"gte=1,lte=16"`

	// Logger receives progress and warnings. Nil means slog.Default().
	Logger *slog.Logger `toml:"-" validate:"-"`
}

// DefaultConfig returns the configuration used for unset values.
func DefaultConfig() Config {
	return Config{
		Formatter:  slices.Clone(format.DefaultCommand),
		OnMismatch: provider.MismatchSkip,
		TypesUnit:  "types",
		IndexUnit:  "proto",
		IndentSize: 4,
	}
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// Unit names become both file names and Zig identifiers.
	_ = v.RegisterValidation("unitname", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for i, c := range s {
			letter := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
			if !letter && (i == 0 || c < '0' || c > '9') {
				return false
			}
		}
		return true
	})
	return v
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "unitname":
		return fmt.Sprintf("%s %q is not a valid unit name", field, fe.Value())
	case "nefield":
		return fmt.Sprintf("%s must differ from index_unit", field)
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 1 and 16, got %v", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}

// LoadConfigFile reads a TOML configuration file and overlays the keys it
// defines onto DefaultConfig. Relative out_dir and roots are resolved
// against the directory holding the file.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	base := filepath.Dir(path)
	resolve := func(p string) string {
		p = strings.TrimSpace(p)
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	if meta.IsDefined("out_dir") {
		cfg.OutDir = resolve(raw.OutDir)
	}
	if meta.IsDefined("roots") {
		cfg.Roots = make([]string, len(raw.Roots))
		for i, r := range raw.Roots {
			cfg.Roots[i] = resolve(r)
		}
	}
	if meta.IsDefined("formatter") {
		cfg.Formatter = raw.Formatter
	}
	if meta.IsDefined("no_format") {
		cfg.NoFormat = raw.NoFormat
	}
	if meta.IsDefined("on_mismatch") {
		cfg.OnMismatch = provider.MismatchPolicy(strings.TrimSpace(string(raw.OnMismatch)))
	}
	if meta.IsDefined("skip_interfaces") {
		cfg.SkipInterfaces = raw.SkipInterfaces
	}
	if meta.IsDefined("type_mappings") {
		cfg.TypeMappings = raw.TypeMappings
	}
	if meta.IsDefined("types_unit") {
		cfg.TypesUnit = strings.TrimSpace(raw.TypesUnit)
	}
	if meta.IsDefined("index_unit") {
		cfg.IndexUnit = strings.TrimSpace(raw.IndexUnit)
	}
	if meta.IsDefined("events_only_index") {
		cfg.EventsOnlyIndex = raw.EventsOnlyIndex
	}
	if meta.IsDefined("indent_size") {
		cfg.IndentSize = raw.IndentSize
	}

	return cfg, nil
}
