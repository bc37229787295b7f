package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/allisson/utilkit/internal/errors"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// fileDocument is the YAML layout of a settings file:
//
//	appSettings:
//	  ApiKey: <ciphertext>
//	connectionStrings:
//	  Default: ""
type fileDocument map[settingsDomain.Section]map[string]string

// FileSettingRepository implements the settings backend on a YAML file. A missing file
// reads as empty and is created by the first Save.
type FileSettingRepository struct {
	path string

	mu     sync.Mutex
	cache  *sectionCache
	loaded bool
}

// NewFileSettingRepository creates a settings repository for the YAML file at path.
func NewFileSettingRepository(path string) *FileSettingRepository {
	return &FileSettingRepository{path: path, cache: newSectionCache()}
}

// Path returns the settings file path.
func (r *FileSettingRepository) Path() string {
	return r.path
}

// Get returns the entry for section and key.
func (r *FileSettingRepository) Get(
	_ context.Context,
	section settingsDomain.Section,
	key string,
) (*settingsDomain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(section)
	if err != nil {
		return nil, err
	}

	s, ok := entries[key]
	if !ok {
		return nil, settingsDomain.ErrSettingNotFound
	}
	return cloneSetting(s), nil
}

// List returns the entries of section ordered by key.
func (r *FileSettingRepository) List(
	_ context.Context,
	section settingsDomain.Section,
) ([]*settingsDomain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(section)
	if err != nil {
		return nil, err
	}
	return sortedSettings(entries), nil
}

// Create adds an empty entry. It is written by Save.
func (r *FileSettingRepository) Create(
	_ context.Context,
	section settingsDomain.Section,
	key string,
) (*settingsDomain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(section)
	if err != nil {
		return nil, err
	}
	if _, ok := entries[key]; ok {
		return nil, settingsDomain.ErrSettingAlreadyExists
	}

	now := time.Now().UTC()
	s := &settingsDomain.Setting{Section: section, Key: key, CreatedAt: now, UpdatedAt: now}
	entries[key] = s
	r.cache.stage(section, key)
	return cloneSetting(s), nil
}

// Set stages value for an existing entry. It is written by Save.
func (r *FileSettingRepository) Set(
	_ context.Context,
	section settingsDomain.Section,
	key, value string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(section)
	if err != nil {
		return err
	}

	s, ok := entries[key]
	if !ok {
		return settingsDomain.ErrSettingNotFound
	}

	s.Value = value
	s.UpdatedAt = time.Now().UTC()
	r.cache.stage(section, key)
	return nil
}

// Save writes the whole document atomically (temporary file and rename).
func (r *FileSettingRepository) Save(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.load(settingsDomain.SectionAppSettings); err != nil {
		return err
	}

	doc := make(fileDocument, len(r.cache.sections))
	for _, section := range settingsDomain.Sections() {
		doc[section] = map[string]string{}
	}
	for section, entries := range r.cache.sections {
		values := make(map[string]string, len(entries))
		for key, s := range entries {
			values[key] = s.Value
		}
		doc[section] = values
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode settings file")
	}
	if err := writeFileAtomic(r.path, data, 0o600); err != nil {
		return err
	}

	r.cache.clearStaged()
	return nil
}

// Reload replaces the cached entries of section with the content on disk, discarding
// unsaved changes to that section.
func (r *FileSettingRepository) Reload(_ context.Context, section settingsDomain.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return err
	}

	if !r.loaded {
		r.fill(doc)
		return nil
	}

	r.cache.drop(section)
	r.cache.put(section, documentSettings(doc, section))
	return nil
}

// load returns the cached section, reading the file on first use.
func (r *FileSettingRepository) load(section settingsDomain.Section) (map[string]*settingsDomain.Setting, error) {
	if !r.loaded {
		doc, err := r.readDocument()
		if err != nil {
			return nil, err
		}
		r.fill(doc)
	}

	entries, ok := r.cache.get(section)
	if !ok {
		entries = r.cache.put(section, nil)
	}
	return entries, nil
}

func (r *FileSettingRepository) fill(doc fileDocument) {
	for section := range doc {
		r.cache.put(section, documentSettings(doc, section))
	}
	r.loaded = true
}

func (r *FileSettingRepository) readDocument() (fileDocument, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileDocument{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read settings file")
	}

	doc := fileDocument{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode settings file")
	}
	return doc, nil
}

func documentSettings(doc fileDocument, section settingsDomain.Section) []*settingsDomain.Setting {
	values := doc[section]
	settings := make([]*settingsDomain.Setting, 0, len(values))
	for key, value := range values {
		settings = append(settings, &settingsDomain.Setting{Section: section, Key: key, Value: value})
	}
	return settings
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return apperrors.Wrap(err, "failed to create settings directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.Wrap(err, "failed to create temporary settings file")
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(apperrors.Wrap(err, "failed to write settings file"))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(apperrors.Wrap(err, "failed to set settings file permissions"))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(apperrors.Wrap(err, "failed to sync settings file"))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to close settings file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
