// internal/services/workspace_service.go
package services

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/productform"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/upload"
)

// Workspace is the page state of one signed-in admin: the product dialog and
// the upload that feeds it.
type Workspace struct {
	Form    *productform.Form
	Uploads *upload.Tracker
}

type WorkspaceService struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	store      upload.Store
}

func NewWorkspaceService(store upload.Store) *WorkspaceService {
	return &WorkspaceService{
		workspaces: make(map[string]*Workspace),
		store:      store,
	}
}

// For returns the workspace of userID, creating it on first use.
func (s *WorkspaceService) For(userID string) *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.workspaces[userID]; ok {
		return ws
	}

	form := productform.New()
	log := logrus.WithField("user_id", userID)
	ws := &Workspace{
		Form:    form,
		Uploads: upload.NewTracker(s.store, form, realtime.NewHub(32), log),
	}
	s.workspaces[userID] = ws
	return ws
}
