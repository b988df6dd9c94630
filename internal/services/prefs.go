package services

import (
	"context"
	"strings"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/prefs"
)

// DraftService keeps the single unsaved note draft.
type DraftService interface {
	// Save stores the draft; a draft with neither title nor content is
	// ignored and reported as false.
	Save(ctx context.Context, title, content string) (bool, error)
	Load(ctx context.Context) (*models.Draft, error)
	Clear(ctx context.Context) error
}

type PreferenceService interface {
	Theme(ctx context.Context) (models.Theme, error)
	SetTheme(ctx context.Context, t models.Theme) error
	ToggleTheme(ctx context.Context) (models.Theme, error)
	Language(ctx context.Context) (models.Language, error)
	SetLanguage(ctx context.Context, l models.Language) error
}

type draftService struct {
	repo prefs.Repository
	opts Options
}

func NewDraftService(repo prefs.Repository, opts Options) DraftService {
	return &draftService{repo: repo, opts: opts.withDefaults()}
}

func (s *draftService) Save(ctx context.Context, title, content string) (bool, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return false, nil
	}
	d := models.Draft{Title: title, Content: content, Timestamp: s.opts.Now()}
	if err := s.repo.SaveDraft(ctx, d); err != nil {
		return false, err
	}
	return true, nil
}

func (s *draftService) Load(ctx context.Context) (*models.Draft, error) {
	return s.repo.Draft(ctx)
}

func (s *draftService) Clear(ctx context.Context) error {
	return s.repo.ClearDraft(ctx)
}

type preferenceService struct {
	repo prefs.Repository
}

func NewPreferenceService(repo prefs.Repository) PreferenceService {
	return &preferenceService{repo: repo}
}

func (s *preferenceService) Theme(ctx context.Context) (models.Theme, error) {
	v, err := s.repo.Get(ctx, common.KeyTheme)
	if err != nil {
		return "", err
	}
	if t := models.Theme(v); t == models.ThemeDark {
		return t, nil
	}
	return models.ThemeLight, nil
}

func (s *preferenceService) SetTheme(ctx context.Context, t models.Theme) error {
	if t != models.ThemeLight && t != models.ThemeDark {
		return common.ErrInvalidPreference
	}
	return s.repo.Set(ctx, common.KeyTheme, string(t))
}

func (s *preferenceService) ToggleTheme(ctx context.Context) (models.Theme, error) {
	cur, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := models.ThemeDark
	if cur == models.ThemeDark {
		next = models.ThemeLight
	}
	return next, s.SetTheme(ctx, next)
}

func (s *preferenceService) Language(ctx context.Context) (models.Language, error) {
	v, err := s.repo.Get(ctx, common.KeyLanguage)
	if err != nil {
		return "", err
	}
	if l := models.Language(v); l == models.LanguageArabic {
		return l, nil
	}
	return models.LanguageEnglish, nil
}

func (s *preferenceService) SetLanguage(ctx context.Context, l models.Language) error {
	if l != models.LanguageEnglish && l != models.LanguageArabic {
		return common.ErrInvalidPreference
	}
	return s.repo.Set(ctx, common.KeyLanguage, string(l))
}
