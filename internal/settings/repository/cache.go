// Package repository implements settings backends: a YAML file and PostgreSQL, MySQL and
// SQLite tables. Every backend keeps a per-section cache that Reload drops, and stages
// writes in memory until Save.
package repository

import (
	"slices"
	"strings"

	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// sectionCache holds loaded sections and the keys written since the last Save.
// It is not safe for concurrent use; repositories guard it with their own mutex.
type sectionCache struct {
	sections map[settingsDomain.Section]map[string]*settingsDomain.Setting
	staged   map[settingsDomain.Section]map[string]struct{}
}

func newSectionCache() *sectionCache {
	return &sectionCache{
		sections: make(map[settingsDomain.Section]map[string]*settingsDomain.Setting),
		staged:   make(map[settingsDomain.Section]map[string]struct{}),
	}
}

func (c *sectionCache) get(section settingsDomain.Section) (map[string]*settingsDomain.Setting, bool) {
	entries, ok := c.sections[section]
	return entries, ok
}

func (c *sectionCache) put(section settingsDomain.Section, settings []*settingsDomain.Setting) map[string]*settingsDomain.Setting {
	entries := make(map[string]*settingsDomain.Setting, len(settings))
	for _, s := range settings {
		entries[s.Key] = s
	}
	c.sections[section] = entries
	return entries
}

func (c *sectionCache) drop(section settingsDomain.Section) {
	delete(c.sections, section)
	delete(c.staged, section)
}

func (c *sectionCache) stage(section settingsDomain.Section, key string) {
	keys, ok := c.staged[section]
	if !ok {
		keys = make(map[string]struct{})
		c.staged[section] = keys
	}
	keys[key] = struct{}{}
}

// stagedSettings returns the staged entries ordered by section and key.
func (c *sectionCache) stagedSettings() []*settingsDomain.Setting {
	var out []*settingsDomain.Setting
	for section, keys := range c.staged {
		entries := c.sections[section]
		for key := range keys {
			if s, ok := entries[key]; ok {
				out = append(out, s)
			}
		}
	}
	slices.SortFunc(out, compareSettings)
	return out
}

func (c *sectionCache) clearStaged() {
	clear(c.staged)
}

func sortedSettings(entries map[string]*settingsDomain.Setting) []*settingsDomain.Setting {
	out := make([]*settingsDomain.Setting, 0, len(entries))
	for _, s := range entries {
		out = append(out, cloneSetting(s))
	}
	slices.SortFunc(out, compareSettings)
	return out
}

func compareSettings(a, b *settingsDomain.Setting) int {
	if c := strings.Compare(string(a.Section), string(b.Section)); c != 0 {
		return c
	}
	return strings.Compare(a.Key, b.Key)
}

func cloneSetting(s *settingsDomain.Setting) *settingsDomain.Setting {
	c := *s
	return &c
}
