package conversation

import (
	"strings"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// AccessControl gates every engine entry point against the live allow-list.
// Membership is a pure, case-sensitive comparison; a miss causes no state
// change and no external call.
type AccessControl struct {
	settings Settings
}

// NewAccessControl creates an access gate backed by the settings surface,
// so allow-list updates apply without a restart.
func NewAccessControl(settings Settings) *AccessControl {
	return &AccessControl{settings: settings}
}

// IsAllowed reports whether the username is on the allow-list.
func (a *AccessControl) IsAllowed(username string) bool {
	raw, ok := a.settings.Get(entity.SettingAllowedUsers)
	if !ok || raw == "" {
		return false
	}
	for _, allowed := range strings.Split(raw, ",") {
		if strings.TrimSpace(allowed) == username {
			return true
		}
	}
	return false
}
