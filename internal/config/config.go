// Package config reads camdb.yaml
package config

import (
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// DefaultPath is read when no --config flag is given
const DefaultPath = "camdb.yaml"

type Config struct {
	Listen string `yaml:"listen"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Scratch struct {
		Dir string `yaml:"dir"`
		IDs string `yaml:"ids"`
	} `yaml:"scratch"`

	Display struct {
		DateFormat string `yaml:"date_format"`
		TimeFormat string `yaml:"time_format"`
	} `yaml:"display"`
}

// Default returns the settings used for every key the file leaves out
func Default() Config {
	var c Config
	c.Listen = ":8089"
	c.Log.Level = "info"
	c.Log.Format = "color"
	c.Scratch.IDs = "counter"
	c.Display.DateFormat = "YYYY-MM-DD"
	c.Display.TimeFormat = "24h"
	return c
}

// Load reads path over the defaults. A missing file is not an error
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, errors.Annotatef(err, "read %s", path)
	}

	if err = yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Annotatef(err, "parse %s", path)
	}
	if err = c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := c.dateFormat(); err != nil {
		return err
	}
	if _, err := c.timeFormat(); err != nil {
		return err
	}
	switch c.Scratch.IDs {
	case "", "counter", "uuid", "random":
	default:
		return errors.NotValidf("scratch.ids %q", c.Scratch.IDs)
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return errors.NotValidf("log.level %q", c.Log.Level)
		}
	}
	return nil
}

func (c Config) dateFormat() (core.DateFormat, error) {
	switch strings.ToUpper(c.Display.DateFormat) {
	case "", "YYYY-MM-DD":
		return core.DateYYYYMMDD, nil
	case "DD-MM-YYYY":
		return core.DateDDMMYYYY, nil
	case "MM-DD-YYYY":
		return core.DateMMDDYYYY, nil
	}
	return 0, errors.NotValidf("display.date_format %q", c.Display.DateFormat)
}

func (c Config) timeFormat() (core.TimeFormat, error) {
	switch strings.ToLower(c.Display.TimeFormat) {
	case "", "24h":
		return core.Time24Hour, nil
	case "12h":
		return core.Time12Hour, nil
	}
	return 0, errors.NotValidf("display.time_format %q", c.Display.TimeFormat)
}

// Deps builds the driver collaborators. Bodies are staged to disk only when
// scratch.dir is set
func (c Config) Deps() (wire.Deps, error) {
	date, err := c.dateFormat()
	if err != nil {
		return wire.Deps{}, err
	}
	clock, err := c.timeFormat()
	if err != nil {
		return wire.Deps{}, err
	}

	deps := wire.Deps{
		Clock:   wire.SystemClock{},
		Display: wire.Display{Date: date, Time: clock},
	}

	switch c.Scratch.IDs {
	case "uuid":
		deps.IDs = wire.UUIDs{}
	case "random":
		deps.IDs = wire.RandomIDs{Size: 12}
	default:
		deps.IDs = wire.NewCounter("body-")
	}

	if c.Scratch.Dir != "" {
		if err = os.MkdirAll(c.Scratch.Dir, 0o700); err != nil {
			return wire.Deps{}, errors.Annotatef(err, "scratch dir %s", c.Scratch.Dir)
		}
		deps.Stager = wire.FileStager{Dir: c.Scratch.Dir}
	}
	return deps, nil
}

// Logger builds the process logger. Any format other than json writes
// console lines, colored only on a terminal stdout
func (c Config) Logger(w io.Writer) zerolog.Logger {
	if c.Log.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out: w, TimeFormat: "15:04:05.000",
			NoColor: w != os.Stdout || c.Log.Format == "text",
		}
	}

	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}
