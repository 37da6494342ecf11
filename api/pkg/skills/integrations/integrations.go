// Package integrations assembles the builtin skill handlers of every
// integration into one registry.
package integrations

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/clients"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/discord"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/google"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/notion"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/slack"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations/utility"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
)

// NewRegistry registers every builtin handler. Order is stable so that
// Registry.Names lists skills grouped by integration.
func NewRegistry(factory clients.Factory) (*registry.Registry, error) {
	return registry.NewBuilder().
		AddAll(slack.New(factory).Entries()).
		AddAll(discord.New(factory).Entries()).
		AddAll(google.New(factory).Entries()).
		AddAll(notion.New(factory).Entries()).
		AddAll(utility.New().Entries()).
		Build()
}
