package content

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/service"
)

// reloadDebounce coalesces bursts of file events into one reload
const reloadDebounce = 250 * time.Millisecond

// Service manages agent definitions and hot-reloads them on file change
// Consumers snapshot the catalog at frame start; a reload swaps the
// pointer atomically and bumps the generation
type Service struct {
	log     *zap.Logger
	manager *ContentManager

	catalog    atomic.Pointer[core.AgentCatalog]
	generation atomic.Int64

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewService creates a new content service
func NewService(log *zap.Logger) *Service {
	return &Service{
		log:    log.Named("content"),
		stopCh: make(chan struct{}),
	}
}

// Name implements Service
func (s *Service) Name() string {
	return "content"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: string - definition directory (optional)
func (s *Service) Init(args ...any) error {
	s.manager = NewContentManager(s.log)

	if len(args) > 0 {
		if path, ok := args[0].(string); ok && path != "" {
			s.manager.dataDir = path
		}
	}

	s.reload()
	return nil
}

// Start implements Service
// Begins watching the definition directory; watch failure degrades to
// load-once behavior
func (s *Service) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Warn("definition hot reload unavailable", zap.Error(err))
		return nil
	}
	if err := watcher.Add(s.manager.DataDir()); err != nil {
		s.log.Warn("cannot watch definition directory",
			zap.String("dir", s.manager.DataDir()), zap.Error(err))
		watcher.Close()
		return nil
	}

	s.watcher = watcher
	s.wg.Add(1)
	go s.watch()
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	close(s.stopCh)
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.wg.Wait()
	return nil
}

// Contribute implements service.ResourceContributor
func (s *Service) Contribute(publish service.ResourcePublisher) {
	publish(&engine.ContentResource{Provider: s})
}

// Catalog returns the current definition snapshot
func (s *Service) Catalog() *core.AgentCatalog {
	return s.catalog.Load()
}

// reload rescans and reparses everything, then swaps the catalog
func (s *Service) reload() {
	if err := s.manager.DiscoverFiles(); err != nil {
		s.log.Warn("definition discovery failed", zap.Error(err))
	}

	agents := s.manager.LoadAll()
	catalog := &core.AgentCatalog{
		Agents:     agents,
		Generation: s.generation.Add(1),
	}
	s.catalog.Store(catalog)

	s.log.Info("agent catalog loaded",
		zap.Int("agents", len(agents)),
		zap.Int64("generation", catalog.Generation))
}

// watch reloads after file events settle
func (s *Service) watch() {
	defer s.wg.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-s.stopCh:
			return

		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("definition watcher error", zap.Error(err))

		case <-timerCh:
			timer = nil
			timerCh = nil
			s.reload()
		}
	}
}
