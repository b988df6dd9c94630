package models

import "fmt"

type NoteFilter string

const (
	FilterAll       NoteFilter = "all"
	FilterCompleted NoteFilter = "completed"
	FilterPending   NoteFilter = "pending"
	FilterToday     NoteFilter = "today"
	FilterWeek      NoteFilter = "week"
)

type NoteSort string

const (
	SortNewest    NoteSort = "newest"
	SortOldest    NoteSort = "oldest"
	SortTitle     NoteSort = "title"
	SortCompleted NoteSort = "completed"
)

func ParseNoteFilter(s string) (NoteFilter, error) {
	switch f := NoteFilter(s); f {
	case FilterAll, FilterCompleted, FilterPending, FilterToday, FilterWeek:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, completed, pending, today or week)", s)
}

func ParseNoteSort(s string) (NoteSort, error) {
	switch o := NoteSort(s); o {
	case SortNewest, SortOldest, SortTitle, SortCompleted:
		return o, nil
	case "":
		return SortNewest, nil
	}
	return "", fmt.Errorf("unknown sort %q (want newest, oldest, title or completed)", s)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)
