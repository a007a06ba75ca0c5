package ore

import "time"

// Plugin is a project listed on Ore.
type Plugin struct {
	PluginID    string
	CreatedAt   time.Time
	Name        string
	Owner       string
	Description string
	Href        string
	Members     []User
	Channels    []Channel
	Recommended Version
	Category    PluginCategory
	Views       int64
	Downloads   int64
	Stars       int64
}

// Member returns the member with the given name.
func (p *Plugin) Member(name string) (User, bool) {
	for _, u := range p.Members {
		if u.Name == name {
			return u, true
		}
	}
	return User{}, false
}

// User is a member of a plugin's team.
type User struct {
	UserID   int64
	Name     string
	Roles    []string
	HeadRole string
}

// Channel is a release channel such as "Release" or "Beta".
type Channel struct {
	Name  string
	Color string
}

// Version is a released build of a plugin.
type Version struct {
	ID           int64
	CreatedAt    time.Time
	Name         string
	Dependencies []Dependency
	PluginID     string
	Channel      Channel
	FileSize     int64
}

// Depends returns the dependency on pluginID, if any.
func (v *Version) Depends(pluginID string) (Dependency, bool) {
	for _, d := range v.Dependencies {
		if d.PluginID == pluginID {
			return d, true
		}
	}
	return Dependency{}, false
}

// SpongeAPIPluginID is the dependency id versions use to declare the
// SpongeAPI release they target.
const SpongeAPIPluginID = "spongeapi"

// Dependency is a version constraint on another plugin.
type Dependency struct {
	PluginID string
	Version  string
}
