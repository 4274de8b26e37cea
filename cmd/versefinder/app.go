package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
	"github.com/FocuswithJustin/versefinder/internal/bible"
	"github.com/FocuswithJustin/versefinder/internal/config"
	"github.com/FocuswithJustin/versefinder/internal/logging"
	"github.com/FocuswithJustin/versefinder/internal/providers"
	"github.com/FocuswithJustin/versefinder/internal/providers/apibible"
	"github.com/FocuswithJustin/versefinder/internal/providers/youversion"
	"github.com/FocuswithJustin/versefinder/internal/search"
	"github.com/FocuswithJustin/versefinder/internal/translations"
)

// app holds the loaded configuration and the lazily built service.
type app struct {
	ctx    context.Context
	cfg    *config.Config
	out    io.Writer
	svc    *bible.Service
	index  *search.Index
	closed bool
}

func newApp(ctx context.Context, g Globals, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(g.Config, g.EnvFile)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	logging.InitLoggerWithWriter(stderr, level, format)

	return &app{ctx: ctx, cfg: cfg, out: stdout}, nil
}

// Close releases the phrase index, if one was opened.
func (a *app) Close() error {
	if a.index == nil || a.closed {
		return nil
	}
	a.closed = true
	return a.index.Close()
}

func (a *app) translations() *translations.Table {
	return translations.Default().With(a.cfg.Translations.YouVersion, a.cfg.Translations.APIBible)
}

// service builds the bible service. The phrase index is attached only when
// its database file already exists.
func (a *app) service() (*bible.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	yv := a.cfg.YouVersion
	ab := a.cfg.APIBible
	opts := []bible.Option{
		bible.WithTranslations(a.translations()),
		bible.WithNormalizeCache(a.cfg.Cache.Size, a.cfg.Cache.GetTTL()),
	}

	if ok, err := a.indexExists(); err != nil {
		return nil, err
	} else if ok {
		ix, err := a.openIndex(false)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bible.WithSearcher(ix))
	}

	a.svc = bible.New(
		youversion.New(youversion.Config{
			BaseURL:     yv.BaseURL,
			AppKey:      yv.AppKey,
			Format:      yv.Format,
			Concurrency: yv.Concurrency,
			HTTP:        providers.NewClient(providers.WithTimeout(yv.GetTimeout())),
		}),
		apibible.New(apibible.Config{
			BaseURL: ab.BaseURL,
			AppKey:  ab.AppKey,
			Format:  ab.Format,
			HTTP:    providers.NewClient(providers.WithTimeout(ab.GetTimeout())),
		}),
		opts...,
	)
	return a.svc, nil
}

func (a *app) indexExists() (bool, error) {
	_, err := os.Stat(a.cfg.Search.DatabasePath)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, apperrors.NewIO("stat", a.cfg.Search.DatabasePath, err)
	}
}

// openIndex opens the phrase index, creating it when writable.
func (a *app) openIndex(writable bool) (*search.Index, error) {
	if a.index != nil {
		return a.index, nil
	}
	open := search.OpenReadOnly
	if writable {
		open = search.Open
	}
	ix, err := open(a.ctx, a.cfg.Search.DatabasePath, search.WithLimit(a.cfg.Search.Limit))
	if err != nil {
		return nil, err
	}
	a.index = ix
	return ix, nil
}

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}
