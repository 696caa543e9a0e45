package enumkitgen

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/enumkit/enumkitgen/golang"
	"github.com/broady/enumkit/enumkitgen/provider"
)

// Config holds the configuration for code generation.
type Config struct {
	// Dir is the working directory for package loading.
	// Default: the current directory.
	Dir string

	// Patterns are the Go package patterns to scan, e.g. "./...".
	// Default: "."
	Patterns []string `validate:"dive,required"`

	// BuildTags are passed to the go command when loading packages.
	BuildTags []string `validate:"dive,required,excludesall=0x2C"`

	// Delimiter joins member names in the string form of flags enums.
	// Default: "|"
	Delimiter string `validate:"required"`

	// FileSuffix is appended to the lowercased enum name to name the
	// generated file. Default: "_enumkit.go"
	FileSuffix string `validate:"required,endswith=.go,excludesall=/\\"`

	// RuntimeImport is the import path of the runtime package generated code
	// uses. Default: "github.com/broady/enumkit"
	RuntimeImport string `validate:"required"`

	// Concurrency limits how many declarations are processed at once.
	// Default: GOMAXPROCS.
	Concurrency int `validate:"gte=1,lte=1024"`

	// OutRoot is the directory output paths are relative to. Default: the
	// module root of the loaded packages, or Dir.
	OutRoot string

	// DryRun skips writing and removing files.
	DryRun bool

	// Prune removes the generated file of a declaration that disappeared
	// between passes of a session.
	Prune bool
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg Config) Config {
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"."}
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = golang.DefaultDelimiter
	}
	if cfg.FileSuffix == "" {
		cfg.FileSuffix = golang.DefaultFileSuffix
	}
	if cfg.RuntimeImport == "" {
		cfg.RuntimeImport = golang.DefaultRuntimeImport
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
	return cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate applies defaults to cfg and checks the result.
func (cfg Config) Validate() error {
	c := applyConfigDefaults(cfg)
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msgs = append(msgs, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "endswith":
		return fmt.Sprintf("must end with %q", ve.Param())
	case "excludesall":
		return "contains a forbidden character"
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

func (cfg Config) emitterOptions() golang.Options {
	return golang.Options{
		RuntimeImport: cfg.RuntimeImport,
		Delimiter:     cfg.Delimiter,
		FileSuffix:    cfg.FileSuffix,
	}
}

func (cfg Config) sourceProvider() *provider.SourceProvider {
	return &provider.SourceProvider{
		Dir:             cfg.Dir,
		Patterns:        cfg.Patterns,
		BuildTags:       cfg.BuildTags,
		GeneratedSuffix: cfg.FileSuffix,
	}
}
