package service

import (
	"fmt"

	"go.uber.org/zap"
)

// Manager owns service lifecycles
// Services initialize in dependency order, start in that order, and
// stop in reverse
type Manager struct {
	log      *zap.Logger
	services []Service
	byName   map[string]Service
	started  []Service
}

// NewManager creates an empty service manager
func NewManager(log *zap.Logger) *Manager {
	return &Manager{
		log:    log.Named("service"),
		byName: make(map[string]Service),
	}
}

// Add registers a service; duplicate names are an error
func (m *Manager) Add(s Service) error {
	if _, dup := m.byName[s.Name()]; dup {
		return fmt.Errorf("duplicate service %q", s.Name())
	}
	m.services = append(m.services, s)
	m.byName[s.Name()] = s
	return nil
}

// InitAll initializes every service in dependency order
// Args apply to the named service only
func (m *Manager) InitAll(args map[string][]any) error {
	ordered, err := m.order()
	if err != nil {
		return err
	}
	m.services = ordered

	for _, s := range m.services {
		if err := s.Init(args[s.Name()]...); err != nil {
			return fmt.Errorf("init %s: %w", s.Name(), err)
		}
		m.log.Debug("service initialized", zap.String("name", s.Name()))
	}
	return nil
}

// StartAll starts every initialized service
func (m *Manager) StartAll() error {
	for _, s := range m.services {
		if err := s.Start(); err != nil {
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
		m.started = append(m.started, s)
	}
	return nil
}

// StopAll stops started services in reverse order
func (m *Manager) StopAll() {
	for i := len(m.started) - 1; i >= 0; i-- {
		s := m.started[i]
		if err := s.Stop(); err != nil {
			m.log.Warn("service stop failed",
				zap.String("name", s.Name()), zap.Error(err))
		}
	}
	m.started = nil
}

// ContributeAll collects ECS resources from contributing services
func (m *Manager) ContributeAll(publish ResourcePublisher) {
	for _, s := range m.services {
		if c, ok := s.(ResourceContributor); ok {
			c.Contribute(publish)
		}
	}
}

// order sorts services so dependencies initialize first
func (m *Manager) order() ([]Service, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(m.services))
	ordered := make([]Service, 0, len(m.services))

	var visit func(s Service) error
	visit = func(s Service) error {
		switch state[s.Name()] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle through %q", s.Name())
		}
		state[s.Name()] = visiting

		for _, dep := range s.Dependencies() {
			ds, ok := m.byName[dep]
			if !ok {
				return fmt.Errorf("%s depends on missing service %q", s.Name(), dep)
			}
			if err := visit(ds); err != nil {
				return err
			}
		}

		state[s.Name()] = done
		ordered = append(ordered, s)
		return nil
	}

	for _, s := range m.services {
		if err := visit(s); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
