package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/kv"
	"resume-builder/internal/shared/telemetry"
)

const defaultHistoryLimit = 50

// Options configures a Store.
type Options struct {
	// Key is the storage key holding the document. Defaults to DefaultStorageKey.
	Key string
	// HistoryLimit bounds the undo stack. Zero uses the default, negative disables history.
	HistoryLimit int
	Now          func() time.Time
}

// Store is the single source of truth for the resume document. Every
// effective mutation derives a new document from a clone of the previous one,
// records it in the edit history and persists it. Persistence failures are
// logged and never fail the mutation.
type Store struct {
	mu      sync.RWMutex
	doc     Document
	storage kv.Store
	key     string
	hist    *history
	now     func() time.Time
}

// Open loads the document from storage, falling back to the defaults when
// nothing is stored or the stored value cannot be read.
func Open(ctx context.Context, storage kv.Store, opts Options) *Store {
	s := newStore(storage, opts)
	s.doc = s.load(ctx)
	return s
}

func newStore(storage kv.Store, opts Options) *Store {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultStorageKey
	}
	limit := opts.HistoryLimit
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		storage: storage,
		key:     key,
		hist:    newHistory(limit),
		now:     now,
	}
}

func (s *Store) load(ctx context.Context) Document {
	if s.storage == nil {
		return Default()
	}
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			telemetry.Error("resume.load_failed", map[string]any{"key": s.key, "error": err.Error()})
			metrics.IncStorageFailures()
		}
		return Default()
	}
	doc, err := MergeWithDefaults(raw)
	if err != nil {
		telemetry.Error("resume.load_decode_failed", map[string]any{"key": s.key, "error": err.Error()})
		return Default()
	}
	telemetry.Info("resume.loaded", map[string]any{"key": s.key, "bytes": len(raw)})
	return doc
}

// Document returns a snapshot of the current document.
func (s *Store) Document() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Stats computes completion statistics of the current document.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CompletionStats(s.doc)
}

// History reports the undo/redo state.
func (s *Store) History() HistoryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.state()
}

// mutate applies fn to a clone of the current document. When fn reports a
// change, the clone becomes the current document.
func (s *Store) mutate(ctx context.Context, label string, fn func(doc *Document) (bool, error)) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return s.doc.Clone(), err
	}
	next.normalize()
	s.hist.record(edit{label: label, before: s.doc, after: next})
	s.commit(ctx, label, next)
	return next.Clone(), nil
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context, op string, next Document) {
	s.doc = next
	metrics.IncDocumentMutations()
	s.persist(ctx, op)
}

func (s *Store) persist(ctx context.Context, op string) {
	if s.storage == nil {
		return
	}
	raw, err := Encode(s.doc)
	if err != nil {
		telemetry.Error("resume.encode_failed", map[string]any{"op": op, "error": err.Error()})
		metrics.IncStorageFailures()
		return
	}
	if err := s.storage.Put(context.WithoutCancel(ctx), s.key, raw); err != nil {
		telemetry.Error("resume.persist_failed", map[string]any{"op": op, "key": s.key, "error": err.Error()})
		metrics.IncStorageFailures()
	}
}

// ReplaceSection replaces a whole top-level section with value.
func (s *Store) ReplaceSection(ctx context.Context, section string, value json.RawMessage) (Document, error) {
	return s.mutate(ctx, "replace "+section, func(doc *Document) (bool, error) {
		return true, replaceSection(doc, section, value)
	})
}

func replaceSection(doc *Document, section string, value json.RawMessage) error {
	switch section {
	case SectionPersonal:
		var v Personal
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Personal = v
	case SectionExperience:
		var v []Experience
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Experience = v
	case SectionEducation:
		var v []Education
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Education = v
	case SectionSkills:
		var v Skills
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Skills = v
	case SectionProjects:
		var v []Project
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Projects = v
	case SectionTemplate:
		var v Template
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Template = v
	case SectionColors:
		var v Colors
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Colors = v
	case SectionSettings:
		var v Settings
		if err := decodeValue(value, &v); err != nil {
			return err
		}
		doc.Settings = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	assignIDs(doc)
	return nil
}

// ReplaceNestedField replaces one key of an object-shaped section.
func (s *Store) ReplaceNestedField(ctx context.Context, section, key string, value json.RawMessage) (Document, error) {
	return s.mutate(ctx, "set "+section+"."+key, func(doc *Document) (bool, error) {
		target, err := objectSection(doc, section)
		if err != nil {
			return false, err
		}
		return true, setField(target, key, value)
	})
}

func objectSection(doc *Document, section string) (any, error) {
	switch section {
	case SectionPersonal:
		return &doc.Personal, nil
	case SectionSkills:
		return &doc.Skills, nil
	case SectionTemplate:
		return &doc.Template, nil
	case SectionColors:
		return &doc.Colors, nil
	case SectionSettings:
		return &doc.Settings, nil
	case SectionExperience, SectionEducation, SectionProjects:
		return nil, fmt.Errorf("%w: %q is a list section", ErrUnknownSection, section)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
}

// setField overwrites the JSON field key of the struct target points to.
func setField(target any, key string, value json.RawMessage) error {
	raw, err := json.Marshal(target)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	if _, ok := fields[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if len(value) == 0 {
		value = json.RawMessage("null")
	}
	fields[key] = value
	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := json.Unmarshal(merged, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// AppendListItem appends item, or a stub with a fresh id when item is empty,
// to a list section. It returns the id of the appended entry.
func (s *Store) AppendListItem(ctx context.Context, section string, item json.RawMessage) (Document, ItemID, error) {
	var id ItemID
	doc, err := s.mutate(ctx, "add "+section, func(doc *Document) (bool, error) {
		var err error
		switch section {
		case SectionExperience:
			id, err = appendEntry[Experience](&doc.Experience, item)
		case SectionEducation:
			id, err = appendEntry[Education](&doc.Education, item)
		case SectionProjects:
			id, err = appendEntry[Project](&doc.Projects, item)
		default:
			err = fmt.Errorf("%w: %q is not a list section", ErrUnknownSection, section)
		}
		return err == nil, err
	})
	if err != nil {
		return doc, "", err
	}
	return doc, id, nil
}

// UpdateListItem merges the fields present in partial into the entry with id.
// An unknown id leaves the document unchanged.
func (s *Store) UpdateListItem(ctx context.Context, section string, id ItemID, partial json.RawMessage) (Document, error) {
	return s.mutate(ctx, "update "+section, func(doc *Document) (bool, error) {
		switch section {
		case SectionExperience:
			return mergeEntry[Experience](doc.Experience, id, partial)
		case SectionEducation:
			return mergeEntry[Education](doc.Education, id, partial)
		case SectionProjects:
			return mergeEntry[Project](doc.Projects, id, partial)
		default:
			return false, fmt.Errorf("%w: %q is not a list section", ErrUnknownSection, section)
		}
	})
}

// RemoveListItem removes the entry with id. An unknown id is a no-op.
func (s *Store) RemoveListItem(ctx context.Context, section string, id ItemID) (Document, error) {
	return s.mutate(ctx, "remove "+section, func(doc *Document) (bool, error) {
		switch section {
		case SectionExperience:
			return removeEntry[Experience](&doc.Experience, id), nil
		case SectionEducation:
			return removeEntry[Education](&doc.Education, id), nil
		case SectionProjects:
			return removeEntry[Project](&doc.Projects, id), nil
		default:
			return false, fmt.Errorf("%w: %q is not a list section", ErrUnknownSection, section)
		}
	})
}

// SetCurrent sets the current flag of an entry. Marking an entry current
// clears its end date.
func (s *Store) SetCurrent(ctx context.Context, section string, id ItemID, current bool) (Document, error) {
	return s.mutate(ctx, "set current "+section, func(doc *Document) (bool, error) {
		switch section {
		case SectionExperience:
			return setEntryCurrent[Experience](doc.Experience, id, current), nil
		case SectionEducation:
			return setEntryCurrent[Education](doc.Education, id, current), nil
		case SectionProjects:
			return setEntryCurrent[Project](doc.Projects, id, current), nil
		default:
			return false, fmt.Errorf("%w: %q is not a list section", ErrUnknownSection, section)
		}
	})
}

// AddSkill appends the trimmed value to a skill category. Blank values are ignored.
func (s *Store) AddSkill(ctx context.Context, category, value string) (Document, error) {
	return s.mutate(ctx, "add skill", func(doc *Document) (bool, error) {
		list, ok := doc.Skills.Category(category)
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return false, nil
		}
		*list = append(*list, trimmed)
		return true, nil
	})
}

// RemoveSkillAt removes the skill at index. Out of range is a no-op.
func (s *Store) RemoveSkillAt(ctx context.Context, category string, index int) (Document, error) {
	return s.mutate(ctx, "remove skill", func(doc *Document) (bool, error) {
		list, ok := doc.Skills.Category(category)
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		if index < 0 || index >= len(*list) {
			return false, nil
		}
		*list = removeAt(*list, index)
		return true, nil
	})
}

// AddAchievement appends an empty achievement to the experience entry.
func (s *Store) AddAchievement(ctx context.Context, experienceID ItemID) (Document, error) {
	return s.mutate(ctx, "add achievement", func(doc *Document) (bool, error) {
		i := indexOf[Experience](doc.Experience, experienceID)
		if i < 0 {
			return false, nil
		}
		doc.Experience[i].Achievements = append(doc.Experience[i].Achievements, "")
		return true, nil
	})
}

// UpdateAchievementAt replaces one achievement of the experience entry.
func (s *Store) UpdateAchievementAt(ctx context.Context, experienceID ItemID, index int, value string) (Document, error) {
	return s.mutate(ctx, "update achievement", func(doc *Document) (bool, error) {
		i := indexOf[Experience](doc.Experience, experienceID)
		if i < 0 {
			return false, nil
		}
		achievements := doc.Experience[i].Achievements
		if index < 0 || index >= len(achievements) {
			return false, nil
		}
		achievements[index] = value
		return true, nil
	})
}

// RemoveAchievementAt removes one achievement of the experience entry.
func (s *Store) RemoveAchievementAt(ctx context.Context, experienceID ItemID, index int) (Document, error) {
	return s.mutate(ctx, "remove achievement", func(doc *Document) (bool, error) {
		i := indexOf[Experience](doc.Experience, experienceID)
		if i < 0 {
			return false, nil
		}
		achievements := doc.Experience[i].Achievements
		if index < 0 || index >= len(achievements) {
			return false, nil
		}
		doc.Experience[i].Achievements = removeAt(achievements, index)
		return true, nil
	})
}

// SelectTemplate switches the template and derives its layout.
func (s *Store) SelectTemplate(ctx context.Context, name string) (Document, error) {
	return s.mutate(ctx, "select template", func(doc *Document) (bool, error) {
		info, ok := LookupTemplate(name)
		if !ok {
			return false, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, name)
		}
		doc.Template = Template{Name: info.ID, Layout: info.Layout}
		return true, nil
	})
}

// ApplyColorScheme replaces the colors with a preset.
func (s *Store) ApplyColorScheme(ctx context.Context, id string) (Document, error) {
	return s.mutate(ctx, "apply color scheme", func(doc *Document) (bool, error) {
		scheme, ok := LookupColorScheme(id)
		if !ok {
			return false, fmt.Errorf("%w: unknown color scheme %q", ErrInvalidInput, id)
		}
		doc.Colors = scheme.Colors
		return true, nil
	})
}

// Undo reverts the most recent edit.
func (s *Store) Undo(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.hist.undo()
	if !ok {
		return s.doc.Clone(), ErrNothingToUndo
	}
	s.commit(ctx, "undo "+e.label, e.before)
	return s.doc.Clone(), nil
}

// Redo re-applies the most recently undone edit.
func (s *Store) Redo(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.hist.redo()
	if !ok {
		return s.doc.Clone(), ErrNothingToRedo
	}
	s.commit(ctx, "redo "+e.label, e.after)
	return s.doc.Clone(), nil
}

// Reset restores the default document, clears the history and deletes the
// stored copy.
func (s *Store) Reset(ctx context.Context) Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = Default()
	s.hist.clear()
	metrics.IncDocumentMutations()
	if s.storage != nil {
		if err := s.storage.Delete(context.WithoutCancel(ctx), s.key); err != nil {
			telemetry.Error("resume.reset_delete_failed", map[string]any{"key": s.key, "error": err.Error()})
			metrics.IncStorageFailures()
		}
	}
	telemetry.Info("resume.reset", map[string]any{"key": s.key})
	return s.doc.Clone()
}

// ExportJSON serializes the current document and names the download after
// the current date.
func (s *Store) ExportJSON() (string, []byte, error) {
	doc := s.Document()
	raw, err := Encode(doc)
	if err != nil {
		return "", nil, fmt.Errorf("encode document: %w", err)
	}
	name := fmt.Sprintf("resume-data-%s.json", s.now().UTC().Format("2006-01-02"))
	return name, raw, nil
}

// ImportJSON replaces the document with text deep-merged onto the defaults.
// On failure it returns an *ImportError and leaves the document unchanged.
func (s *Store) ImportJSON(ctx context.Context, text []byte) (Document, error) {
	imported, err := MergeWithDefaults(text)
	if err != nil {
		ierr := classifyImportError(err)
		metrics.IncImports(false)
		telemetry.Error("resume.import_failed", map[string]any{"kind": string(ierr.Kind), "error": err.Error()})
		return s.Document(), ierr
	}
	metrics.IncImports(true)
	return s.mutate(ctx, "import", func(doc *Document) (bool, error) {
		*doc = imported
		return true, nil
	})
}

func classifyImportError(err error) *ImportError {
	var shape *shapeError
	if errors.As(err, &shape) || errors.Is(err, errNotObject) || errors.Is(err, ErrInvalidInput) {
		return &ImportError{Kind: ImportShape, Message: "Document does not match the resume format", Err: err}
	}
	return &ImportError{Kind: ImportParse, Message: "Invalid JSON format", Err: err}
}

func removeAt(list []string, index int) []string {
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}
