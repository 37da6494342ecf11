// Package catalog lists the definitions of every builtin skill.
package catalog

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/discord"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/google"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/notion"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/slack"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/utility"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// All returns a fresh copy of the catalog, grouped by integration
func All() []types.SkillDefinition {
	var defs []types.SkillDefinition
	defs = append(defs, slack.Definitions()...)
	defs = append(defs, discord.Definitions()...)
	defs = append(defs, google.Definitions()...)
	defs = append(defs, notion.Definitions()...)
	defs = append(defs, utility.Definitions()...)
	return defs
}

// ByIntegration returns the definitions backed by one integration type. An
// empty type selects the skills that need no integration.
func ByIntegration(t types.IntegrationType) []types.SkillDefinition {
	var defs []types.SkillDefinition
	for _, def := range All() {
		if def.IntegrationType == t {
			defs = append(defs, def)
		}
	}
	return defs
}

func ByCategory(category string) []types.SkillDefinition {
	var defs []types.SkillDefinition
	for _, def := range All() {
		if def.Category == category {
			defs = append(defs, def)
		}
	}
	return defs
}

func Find(name string) (types.SkillDefinition, bool) {
	for _, def := range All() {
		if def.Name == name {
			return def, true
		}
	}
	return types.SkillDefinition{}, false
}
