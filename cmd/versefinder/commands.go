package main

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
	"github.com/FocuswithJustin/versefinder/core/reference"
	"github.com/FocuswithJustin/versefinder/internal/search"
)

// NormalizeCmd prints the chapter address of a reference.
type NormalizeCmd struct {
	Query []string `arg:"" help:"Reference, e.g. \"John 3:16\""`
	JSON  bool     `help:"Output as JSON"`
}

func (c *NormalizeCmd) Run(a *app) error {
	query := strings.Join(c.Query, " ")
	svc, err := a.service()
	if err != nil {
		return err
	}
	addr, ok := svc.Normalize(a.ctx, query)
	if !ok {
		return apperrors.NewNoMatch(query)
	}

	if c.JSON {
		return a.printJSON(struct {
			reference.Address
			Key     string `json:"key"`
			Display string `json:"display"`
		}{addr, addr.Key(), addr.String()})
	}
	fmt.Fprintf(a.out, "%s\t%s\t%d verses\n", addr, addr.Key(), addr.VersesInChapter)
	return nil
}

// TokensCmd prints the provider location tokens of a reference's chapter.
type TokensCmd struct {
	Query []string `arg:"" help:"Reference"`
	Range bool     `help:"Print a single range token instead"`
}

func (c *TokensCmd) Run(a *app) error {
	query := strings.Join(c.Query, " ")
	addr, ok := reference.NewNormalizer(nil).Normalize(query)
	if !ok {
		return apperrors.NewNoMatch(query)
	}

	tokens := reference.LocationTokens(addr)
	if c.Range {
		fmt.Fprintln(a.out, reference.RangeToken(tokens))
		return nil
	}
	for _, t := range tokens {
		fmt.Fprintln(a.out, t)
	}
	return nil
}

// VersesCmd fetches the chapter holding a reference.
type VersesCmd struct {
	Query       []string `arg:"" help:"Reference"`
	Translation string   `short:"t" help:"Translation abbreviation (default from config)"`
	JSON        bool     `help:"Output as JSON"`
}

func (c *VersesCmd) Run(a *app) error {
	query := strings.Join(c.Query, " ")
	svc, err := a.service()
	if err != nil {
		return err
	}

	p, err := svc.GetVerses(a.ctx, query, a.translation(c.Translation))
	if err != nil {
		return err
	}
	if len(p.Verses) == 0 {
		return apperrors.NewNoMatch(query)
	}

	if c.JSON {
		return a.printJSON(p)
	}
	for i, v := range p.Verses {
		fmt.Fprintf(a.out, "%d\t%s\n", i+1, v.Text)
	}
	return nil
}

// ChapterCmd fetches a chapter and marks the selected verse.
type ChapterCmd struct {
	Query       []string `arg:"" help:"Reference"`
	Translation string   `short:"t" help:"Translation abbreviation (default from config)"`
	JSON        bool     `help:"Output as JSON"`
}

func (c *ChapterCmd) Run(a *app) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	ch, err := svc.FetchChapter(a.ctx, strings.Join(c.Query, " "), a.translation(c.Translation))
	if err != nil {
		return err
	}

	if c.JSON {
		return a.printJSON(ch)
	}
	fmt.Fprintln(a.out, ch.VerseReference)
	for i, v := range ch.Verses {
		mark := " "
		if i == ch.SelectedIndex {
			mark = ">"
		}
		fmt.Fprintf(a.out, "%s %d\t%s\n", mark, i+1, v.Text)
	}
	return nil
}

// SuggestCmd prints reference suggestions.
type SuggestCmd struct {
	Input []string `arg:"" help:"Partial reference or phrase"`
	JSON  bool     `help:"Output as JSON"`
}

func (c *SuggestCmd) Run(a *app) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	out, err := svc.Suggest(a.ctx, strings.Join(c.Input, " "))
	if err != nil {
		return err
	}

	if c.JSON {
		return a.printJSON(map[string][]string{"suggestions": out})
	}
	for _, s := range out {
		fmt.Fprintln(a.out, s)
	}
	return nil
}

// SearchIndexCmd loads a TSV file into the phrase index.
type SearchIndexCmd struct {
	Path string `arg:"" help:"TSV file of USFM.C.V<TAB>text lines" type:"existingfile"`
}

func (c *SearchIndexCmd) Run(a *app) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return apperrors.NewIO("open", c.Path, err)
	}
	defer f.Close()

	entries, err := search.LoadTSV(f)
	if err != nil {
		return apperrors.Wrap(err, c.Path)
	}

	ix, err := a.openIndex(true)
	if err != nil {
		return err
	}
	if err := ix.Add(a.ctx, entries); err != nil {
		return err
	}

	total, err := ix.Count(a.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "indexed %d verses (%d total) into %s\n", len(entries), total, a.cfg.Search.DatabasePath)
	return nil
}

// SearchQueryCmd prints references whose text contains a phrase.
type SearchQueryCmd struct {
	Phrase []string `arg:"" help:"Phrase to search for"`
	JSON   bool     `help:"Output as JSON"`
}

func (c *SearchQueryCmd) Run(a *app) error {
	if ok, err := a.indexExists(); err != nil {
		return err
	} else if !ok {
		return apperrors.NewNotFound("search index", a.cfg.Search.DatabasePath)
	}
	svc, err := a.service()
	if err != nil {
		return err
	}

	refs, err := svc.References(a.ctx, strings.Join(c.Phrase, " "))
	if err != nil {
		return err
	}

	if c.JSON {
		return a.printJSON(map[string][]string{"references": refs})
	}
	for _, r := range refs {
		fmt.Fprintln(a.out, r)
	}
	return nil
}

// TranslationsCmd lists translations and their providers.
type TranslationsCmd struct {
	JSON bool `help:"Output as JSON"`
}

func (c *TranslationsCmd) Run(a *app) error {
	list := a.translations().List()
	if c.JSON {
		return a.printJSON(list)
	}
	for _, t := range list {
		fmt.Fprintf(a.out, "%-10s %-11s %s\n", t.Abbrev, t.Provider, t.ID)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "versefinder version %s\n", version)
	return nil
}

func (a *app) translation(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.DefaultTranslation
}
