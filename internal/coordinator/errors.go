package coordinator

import "errors"

var (
	// ErrNoHostController is returned when no selection handlers are supplied.
	ErrNoHostController = errors.New("coordinator: host controller is required")
	// ErrNoProject is returned when no project collaborator is supplied.
	ErrNoProject = errors.New("coordinator: project is required")
	// ErrNoHost is returned by SyncTo for a nil host view.
	ErrNoHost = errors.New("coordinator: host view is nil")
	// ErrNodeNotFound is returned when a selection targets a node that does not exist.
	ErrNodeNotFound = errors.New("coordinator: node not found")
)
