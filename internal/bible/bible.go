// Package bible answers verse, chapter and suggestion queries by combining
// reference normalization with the configured content providers.
package bible

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/versefinder/core/assemble"
	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
	"github.com/FocuswithJustin/versefinder/core/reference"
	"github.com/FocuswithJustin/versefinder/core/suggest"
	"github.com/FocuswithJustin/versefinder/internal/cache"
	"github.com/FocuswithJustin/versefinder/internal/logging"
	"github.com/FocuswithJustin/versefinder/internal/translations"
)

// FlatProvider fetches one passage per location token.
type FlatProvider interface {
	FetchChapter(ctx context.Context, bibleID string, tokens []string) ([]assemble.FlatPassage, error)
}

// TaggedProvider fetches a verse range as a tagged content tree.
type TaggedProvider interface {
	FetchPassageRange(ctx context.Context, bibleID, rangeToken string) (assemble.ContentTree, error)
}

// Passage is the chapter holding a queried reference.
type Passage struct {
	Address reference.Address `json:"address"`
	Verses  []assemble.Verse  `json:"verses"`

	// Digest is the hex BLAKE3 hash of the verse texts, usable as an ETag.
	Digest string `json:"digest,omitempty"`
}

// Chapter is a fetched chapter positioned on the selected verse.
type Chapter struct {
	Address        reference.Address `json:"address"`
	Verses         []assemble.Verse  `json:"verses"`
	VerseLimit     int               `json:"verse_limit"`
	SelectedIndex  int               `json:"selected_index"`
	VerseReference string            `json:"verse_reference"`
}

// Service is the verse lookup service.
type Service struct {
	grammar      reference.Grammar
	normalizer   *reference.Normalizer
	translations *translations.Table
	flat         FlatProvider
	tagged       TaggedProvider
	searcher     suggest.PhraseSearcher
	suggester    *suggest.Generator
	resolved     *cache.Cache[string, resolution]
}

// resolution is a memoized Normalize result.
type resolution struct {
	addr reference.Address
	ok   bool
}

// Option configures a Service.
type Option func(*Service)

// WithGrammar replaces the reference grammar.
func WithGrammar(g reference.Grammar) Option {
	return func(s *Service) { s.grammar = g }
}

// WithTranslations replaces the built-in translation table.
func WithTranslations(t *translations.Table) Option {
	return func(s *Service) { s.translations = t }
}

// WithSearcher enables phrase search.
func WithSearcher(ps suggest.PhraseSearcher) Option {
	return func(s *Service) { s.searcher = ps }
}

// WithNormalizeCache memoizes up to size normalized queries for ttl.
// Provider responses are never cached.
func WithNormalizeCache(size int, ttl time.Duration) Option {
	return func(s *Service) { s.resolved = cache.New[string, resolution](size, ttl) }
}

// New creates a Service. Either provider may be nil, in which case its
// translations are unsupported.
func New(flat FlatProvider, tagged TaggedProvider, opts ...Option) *Service {
	s := &Service{flat: flat, tagged: tagged}
	for _, opt := range opts {
		opt(s)
	}
	if s.translations == nil {
		s.translations = translations.Default()
	}
	s.normalizer = reference.NewNormalizer(s.grammar)
	s.suggester = suggest.New(s.grammar, memoized{s}, s.searcher)
	return s
}

// memoized adapts the service's normalization cache to suggest.Validator.
type memoized struct{ s *Service }

func (m memoized) Normalize(query string) (reference.Address, bool) {
	return m.s.normalize(query)
}

func (s *Service) normalize(query string) (reference.Address, bool) {
	if r, ok := s.resolved.Get(query); ok {
		return r.addr, r.ok
	}
	addr, ok := s.normalizer.Normalize(query)
	s.resolved.Set(query, resolution{addr: addr, ok: ok})
	return addr, ok
}

// Normalize resolves query into an address.
func (s *Service) Normalize(ctx context.Context, query string) (reference.Address, bool) {
	addr, ok := s.normalize(query)
	key := ""
	if ok {
		key = addr.Key()
	}
	logging.QueryResolved(ctx, query, key, ok)
	return addr, ok
}

// GetVerses returns every verse of the chapter query names in translation.
// An empty or unresolvable query yields an empty passage and no error.
func (s *Service) GetVerses(ctx context.Context, query, translation string) (*Passage, error) {
	empty := &Passage{Verses: []assemble.Verse{}}
	if strings.TrimSpace(query) == "" {
		return empty, nil
	}

	addr, ok := s.Normalize(ctx, query)
	if !ok {
		return empty, nil
	}

	tr, ok := s.translations.Lookup(translation)
	if !ok {
		return nil, apperrors.NewNotFound("translation", translation)
	}

	verses, err := s.chapter(ctx, addr, tr)
	if err != nil {
		return nil, apperrors.Wrapf(err, "fetching %s (%s)", addr.Key(), tr.Abbrev)
	}

	return &Passage{Address: addr, Verses: verses, Digest: Digest(verses)}, nil
}

// FetchChapter fetches the chapter input names, normalized to its chapter
// key, and positions it on the requested verse.
func (s *Service) FetchChapter(ctx context.Context, input, translation string) (*Chapter, error) {
	addr, ok := s.Normalize(ctx, input)
	if !ok {
		return nil, apperrors.NewNoMatch(input)
	}

	p, err := s.GetVerses(ctx, addr.Key(), translation)
	if err != nil {
		return nil, err
	}

	ch := &Chapter{
		Address:    addr,
		Verses:     p.Verses,
		VerseLimit: addr.VersesInChapter,
	}
	if len(p.Verses) > 0 {
		ch.SelectedIndex = min(addr.SelectedVerse, len(p.Verses)-1)
	}
	ch.VerseReference = reference.Address{
		Book:       addr.Book,
		Chapter:    addr.Chapter,
		VerseGiven: true,
		// Verse identity is position in the chapter.
		SelectedVerse: ch.SelectedIndex,
	}.String()
	return ch, nil
}

// References returns "Name C:V" for every indexed verse containing phrase.
func (s *Service) References(ctx context.Context, phrase string) ([]string, error) {
	out := []string{}
	if s.searcher == nil || strings.TrimSpace(phrase) == "" {
		return out, nil
	}

	hits, err := s.searcher.Search(ctx, strings.TrimSpace(phrase))
	if err != nil {
		return nil, apperrors.Wrap(err, "searching references")
	}
	for _, h := range hits {
		if ref, ok := suggest.FormatHit(h); ok {
			out = append(out, ref)
		}
	}
	return out, nil
}

// Suggest returns reference suggestions for partial or ambiguous input.
func (s *Service) Suggest(ctx context.Context, input string) ([]string, error) {
	return s.suggester.Suggest(ctx, input)
}

// Translations lists the available translations.
func (s *Service) Translations() []translations.Translation {
	return s.translations.List()
}

func (s *Service) chapter(ctx context.Context, addr reference.Address, tr translations.Translation) ([]assemble.Verse, error) {
	tokens := reference.LocationTokens(addr)

	var verses []assemble.Verse
	switch tr.Provider {
	case translations.YouVersion:
		if s.flat == nil {
			return nil, apperrors.NewUnsupported("provider", "youversion is not configured")
		}
		passages, err := s.flat.FetchChapter(ctx, tr.ID, tokens)
		if err != nil {
			return nil, err
		}
		verses = assemble.AssembleFlat(passages)

	case translations.APIBible:
		if s.tagged == nil {
			return nil, apperrors.NewUnsupported("provider", "apibible is not configured")
		}
		tree, err := s.tagged.FetchPassageRange(ctx, tr.ID, reference.RangeToken(tokens))
		if err != nil {
			return nil, err
		}
		verses, err = assemble.AssembleTagged(tree, tokens)
		if err != nil {
			return nil, err
		}

	default:
		return nil, apperrors.NewUnsupported("provider", string(tr.Provider))
	}

	return verses, nil
}

// Digest returns the hex BLAKE3 hash of the verse texts joined by newlines.
func Digest(verses []assemble.Verse) string {
	h := blake3.New()
	for i, v := range verses {
		if i > 0 {
			h.Write([]byte{'\n'})
		}
		h.Write([]byte(v.Text))
	}
	return hex.EncodeToString(h.Sum(nil))
}
