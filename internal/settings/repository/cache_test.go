package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

func TestSectionCache_StagedSettingsOrder(t *testing.T) {
	c := newSectionCache()
	c.put(settingsDomain.SectionConnectionStrings, []*settingsDomain.Setting{
		{Section: settingsDomain.SectionConnectionStrings, Key: "Default"},
	})
	c.put(settingsDomain.SectionAppSettings, []*settingsDomain.Setting{
		{Section: settingsDomain.SectionAppSettings, Key: "b"},
		{Section: settingsDomain.SectionAppSettings, Key: "a"},
	})

	c.stage(settingsDomain.SectionConnectionStrings, "Default")
	c.stage(settingsDomain.SectionAppSettings, "b")
	c.stage(settingsDomain.SectionAppSettings, "a")
	c.stage(settingsDomain.SectionAppSettings, "missing")

	staged := c.stagedSettings()
	keys := make([]string, len(staged))
	for i, s := range staged {
		keys[i] = string(s.Section) + "/" + s.Key
	}
	assert.Equal(t, []string{"appSettings/a", "appSettings/b", "connectionStrings/Default"}, keys)

	c.clearStaged()
	assert.Empty(t, c.stagedSettings())
}

func TestSectionCache_DropClearsStaged(t *testing.T) {
	c := newSectionCache()
	c.put(settingsDomain.SectionAppSettings, []*settingsDomain.Setting{
		{Section: settingsDomain.SectionAppSettings, Key: "a"},
	})
	c.stage(settingsDomain.SectionAppSettings, "a")

	c.drop(settingsDomain.SectionAppSettings)

	_, ok := c.get(settingsDomain.SectionAppSettings)
	assert.False(t, ok)
	assert.Empty(t, c.stagedSettings())
}
