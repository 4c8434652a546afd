package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"profile-match/internal/domain/skill"
	"profile-match/internal/infrastructure/cache"
	"profile-match/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const (
	suggestDefaultLimit = 10
	suggestMaxLimit     = 25
	resolveBatchWorkers = 8
)

// CatalogCache is the slice of the cache the catalog needs.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context) error
}

type SkillItem struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Category skill.Category `json:"category"`
}

type CatalogUsecase interface {
	Resolve(ctx context.Context, rawName string) (SkillItem, error)
	ResolveBatch(ctx context.Context, rawNames []string) ([]SkillItem, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]SkillItem, error)
	Consolidate(ctx context.Context) (int, error)
}

type Catalog struct {
	skills repository.SkillRepository
	cache  CatalogCache
	logger *zap.Logger

	// Collapses concurrent in-process resolves of the same normalized name.
	// The unique index on skills(lower(name)) remains the ground truth.
	group singleflight.Group
}

func NewCatalogUsecase(skills repository.SkillRepository, cache CatalogCache, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{skills: skills, cache: cache, logger: logger}
}

// Resolve gives a raw skill mention its canonical identity: exact name match
// first, then alias, then find-or-create with category "other".
func (u *Catalog) Resolve(ctx context.Context, rawName string) (SkillItem, error) {
	display := strings.TrimSpace(rawName)
	if display == "" {
		return SkillItem{}, ErrInvalidInput
	}
	normalized := skill.NormalizeName(display)

	v, err, _ := u.group.Do(normalized, func() (any, error) {
		s, err := u.skills.FindByName(ctx, normalized)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, err
		}
		return u.skills.InsertOrFetch(ctx, display, skill.CategoryOther)
	})
	if err != nil {
		u.logger.Error("skill resolve failed", zap.String("name", display), zap.Error(err))
		return SkillItem{}, ErrInternal
	}

	s := v.(skill.Skill)
	return SkillItem{ID: s.ID, Name: s.Name, Category: s.Category}, nil
}

// ResolveBatch resolves a set of raw names concurrently, deduplicating
// internally and preserving input order in the result.
func (u *Catalog) ResolveBatch(ctx context.Context, rawNames []string) ([]SkillItem, error) {
	order := make([]string, 0, len(rawNames))
	seen := make(map[string]bool, len(rawNames))
	displayByKey := make(map[string]string, len(rawNames))
	for _, raw := range rawNames {
		display := strings.TrimSpace(raw)
		if display == "" {
			return nil, ErrInvalidInput
		}
		key := skill.NormalizeName(display)
		if seen[key] {
			continue
		}
		seen[key] = true
		order = append(order, key)
		displayByKey[key] = display
	}
	if len(order) == 0 {
		return []SkillItem{}, nil
	}

	var mu sync.Mutex
	resolved := make(map[string]SkillItem, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveBatchWorkers)
	for _, key := range order {
		g.Go(func() error {
			item, err := u.Resolve(gctx, displayByKey[key])
			if err != nil {
				return err
			}
			mu.Lock()
			resolved[key] = item
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]SkillItem, 0, len(order))
	for _, key := range order {
		out = append(out, resolved[key])
	}
	return out, nil
}

// Suggest autocompletes over canonical names and aliases.
func (u *Catalog) Suggest(ctx context.Context, prefix string, limit int) ([]SkillItem, error) {
	prefix = skill.NormalizeName(prefix)
	if prefix == "" {
		return []SkillItem{}, nil
	}
	if limit <= 0 {
		limit = suggestDefaultLimit
	}
	if limit > suggestMaxLimit {
		limit = suggestMaxLimit
	}

	key := cache.SuggestKey(prefix, limit)
	if u.cache != nil {
		var cached []SkillItem
		if ok, _ := u.cache.GetJSON(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	items, err := u.skills.Suggest(ctx, prefix, limit)
	if err != nil {
		u.logger.Error("skill suggest failed", zap.String("prefix", prefix), zap.Error(err))
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, s := range items {
		out = append(out, SkillItem{ID: s.ID, Name: s.Name, Category: s.Category})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

// Consolidate scans the catalog for near-duplicate canonical skills and folds
// each duplicate into the oldest skill of its synonym group. Every merge runs
// in its own transaction; a failed merge stops the scan and reports what was
// merged so far.
func (u *Catalog) Consolidate(ctx context.Context) (int, error) {
	all, err := u.skills.ListAll(ctx)
	if err != nil {
		return 0, ErrInternal
	}

	// ListAll orders by created_at then id, so the first skill seen per group
	// is the deterministic survivor.
	survivorByKey := make(map[string]skill.Skill, len(all))
	merged := 0
	for _, s := range all {
		key := skill.SynonymKey(skill.NormalizeName(s.Name))
		survivor, ok := survivorByKey[key]
		if !ok {
			survivorByKey[key] = s
			continue
		}
		if err := u.skills.Merge(ctx, survivor.ID, s.ID, s.Name); err != nil {
			u.logger.Error("skill merge failed",
				zap.String("survivor", survivor.Name),
				zap.String("loser", s.Name),
				zap.Error(err),
			)
			return merged, ErrInternal
		}
		u.logger.Info("merged duplicate skill",
			zap.String("survivor", survivor.Name),
			zap.String("loser", s.Name),
		)
		merged++
	}

	if merged > 0 && u.cache != nil {
		_ = u.cache.InvalidateCatalog(ctx)
	}
	return merged, nil
}
