package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dhimmel/disease-ontology/internal/term"
	"github.com/go-playground/validator/v10"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and applies it on top of
	// base, returning the merged result. It does not validate.
	Load(ctx context.Context, base Config, paths ...string) (*Config, error)
}

// Config holds everything needed to load, build and serve one ontology.
type Config struct {
	// OntologyName labels the ontology in logs and metrics.
	OntologyName string
	// OntologyPath is the OBO file to parse.
	OntologyPath string `validate:"required"`
	// Relationships lists the relationship types kept while parsing.
	Relationships []string `validate:"dive,required"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	// ServerPort is the HTTP port for `serve`.
	ServerPort int `validate:"min=1,max=65535"`
	// Watch rebuilds the served graph when the OBO file changes.
	Watch bool
	// WatchDebounce delays a rebuild until writes have settled.
	WatchDebounce time.Duration `validate:"min=0"`
}

// Default returns the built-in configuration: the Disease Ontology, is_a
// relationships only, text logs at info level.
func Default() Config {
	return Config{
		OntologyName:  "doid",
		Relationships: []string{term.IsA},
		LogLevel:      "info",
		LogFormat:     "text",
		ServerPort:    8080,
		WatchDebounce: 500 * time.Millisecond,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid field in a single error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be <= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
