package coordinator

import (
	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/tree"
)

// HostView is the state pushed to a host view controller. Every field is
// overwritten on sync; the host owns the copies it receives.
type HostView struct {
	AlertList         []alerts.Entry
	TreeData          []*tree.Node
	IsProjectModified bool
	Breadcrumbs       []string
}

// SyncTo overwrites the host's fields with the current state.
func (c *Coordinator) SyncTo(host *HostView) error {
	if host == nil {
		return ErrNoHost
	}

	c.mu.RLock()
	root := tree.Clone(c.root)
	c.mu.RUnlock()

	host.AlertList = c.alerts.List()
	host.TreeData = []*tree.Node{}
	if root != nil {
		host.TreeData = append(host.TreeData, root)
	}
	host.IsProjectModified = c.project.IsModified()
	host.Breadcrumbs = c.trail.Get()

	c.logger.Debug("synced host view",
		"alerts", len(host.AlertList),
		"breadcrumbs", len(host.Breadcrumbs),
		"modified", host.IsProjectModified,
	)
	return nil
}

// View returns a fresh HostView.
func (c *Coordinator) View() HostView {
	var v HostView
	_ = c.SyncTo(&v)
	return v
}
