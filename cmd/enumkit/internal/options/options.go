// Package options holds the flags shared by the commands that scan packages.
package options

import (
	"time"

	"github.com/broady/enumkit/enumkitgen"
)

// Scan selects the packages to scan and how to generate code for them.
// Field names double as configuration file keys.
type Scan struct {
	Patterns      []string `arg:"" optional:"" help:"Package patterns to scan." default:"."`
	Dir           string   `help:"Directory to run the go command in." short:"C" type:"existingdir"`
	Tags          []string `help:"Build tags." env:"ENUMKIT_TAGS"`
	Delimiter     string   `help:"Separator in the string form of flags enums." env:"ENUMKIT_DELIMITER"`
	Suffix        string   `help:"Generated file name suffix." env:"ENUMKIT_SUFFIX"`
	RuntimeImport string   `help:"Import path of the runtime package." name:"runtime" env:"ENUMKIT_RUNTIME"`
	Concurrency   int      `help:"Declarations processed at once (0 means GOMAXPROCS)." short:"j" env:"ENUMKIT_CONCURRENCY"`
}

// Config converts the flags into a generator configuration.
func (s Scan) Config() enumkitgen.Config {
	return enumkitgen.Config{
		Dir:           s.Dir,
		Patterns:      s.Patterns,
		BuildTags:     s.Tags,
		Delimiter:     s.Delimiter,
		FileSuffix:    s.Suffix,
		RuntimeImport: s.RuntimeImport,
		Concurrency:   s.Concurrency,
	}
}

// Watch holds the flags of commands that can rerun on file changes.
type Watch struct {
	Watch    bool          `help:"Watch for changes and regenerate." short:"w"`
	Debounce time.Duration `help:"Quiet period before a rerun." default:"200ms"`
}
