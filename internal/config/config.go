// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the civiltime command's settings from the
// environment.
package config // import "go.civiltime.net/internal/config"

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/language"

	"go.civiltime.net/civil"
	"go.civiltime.net/format"
)

// Config holds the environment settings. Empty fields are unset.
type Config struct {
	Zone      string `env:"CIVILTIME_ZONE" env-description:"tz database name that Local stands for, such as Europe/Berlin"`
	Locale    string `env:"CIVILTIME_LOCALE" env-description:"BCP 47 tag of the formatting locale, such as de-AT"`
	DateStyle string `env:"CIVILTIME_DATE_STYLE" env-description:"default date style: none, short, medium, long or full"`
	TimeStyle string `env:"CIVILTIME_TIME_STYLE" env-description:"default time style: none, short, medium, long or full"`
	Pattern   string `env:"CIVILTIME_PATTERN" env-description:"default format pattern, such as yyyy-MM-dd HH:mm"`
	Template  string `env:"CIVILTIME_TEMPLATE" env-description:"default format template, such as yMMMd"`
	Debug     bool   `env:"CIVILTIME_DEBUG" env-description:"log at debug level"`
}

// Read reads the configuration from the environment.
func Read() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Usage describes the environment variables.
func Usage() string {
	header := "Environment variables:"
	s, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return header
	}
	return s
}

// LocalZone returns the zone named by CIVILTIME_ZONE, or nil if unset.
func (c Config) LocalZone() (civil.Zone, error) {
	if c.Zone == "" {
		return nil, nil
	}
	z, err := civil.LoadZone(c.Zone)
	if err != nil {
		return nil, fmt.Errorf("config: CIVILTIME_ZONE: %w", err)
	}
	return z, nil
}

// ApplyZone makes civil.Local stand for the configured zone, if any.
// It assigns civil.LocalFunc without synchronization, so it must be called
// at startup before any goroutine reads Local.
func (c Config) ApplyZone() error {
	z, err := c.LocalZone()
	if err != nil || z == nil {
		return err
	}
	loc := civil.Location(z)
	civil.LocalFunc = func() *time.Location { return loc }
	return nil
}

// Formatter returns a formatter with the configured defaults.
func (c Config) Formatter() (*format.Formatter, error) {
	var opts format.Options
	if c.Locale != "" {
		tag, err := language.Parse(c.Locale)
		if err != nil {
			return nil, fmt.Errorf("config: CIVILTIME_LOCALE: %w", err)
		}
		opts.Locale = tag
	}
	for _, s := range []struct {
		name, value string
		style       *format.Style
	}{
		{"CIVILTIME_DATE_STYLE", c.DateStyle, &opts.DateStyle},
		{"CIVILTIME_TIME_STYLE", c.TimeStyle, &opts.TimeStyle},
	} {
		if s.value == "" {
			continue
		}
		style, err := format.ParseStyle(s.value)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", s.name, err)
		}
		*s.style = style
	}
	opts.Pattern, opts.Template = c.Pattern, c.Template
	return format.New(opts), nil
}

// Logger returns a text logger writing to w, at debug level when Debug is
// set.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: c.Debug,
	}))
}
