package commands

import "socialgraph/pkg/utils"

// ReloadGraphCommand rebuilds the session graph from the people source.
// A zero Seed keeps the configured seed.
type ReloadGraphCommand struct {
	Seed int64 `json:"seed" validate:"gte=0"`
}

// Validate validates the command
func (c ReloadGraphCommand) Validate() error {
	return utils.ValidateStruct(c)
}
