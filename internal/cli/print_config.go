package cli

import (
	"github.com/calvinalkan/keebox/internal/keybox"
)

func execPrintConfig(o *IO, cfg keybox.Config) error {
	formatted, err := keybox.FormatConfig(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	o.Println("")
	o.Println("# Sources:")

	if cfg.Sources.Global != "" {
		o.Println("#   global:", cfg.Sources.Global)
	}

	if cfg.Sources.Explicit != "" {
		o.Println("#   explicit:", cfg.Sources.Explicit)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Explicit == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}
