package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/xmlres/internal/adapters/logger"
	"go.trai.ch/xmlres/internal/core/ports"
)

const (
	// FactoryNodeID is the unique identifier for the file watcher factory Graft node.
	FactoryNodeID graft.ID = "adapter.watcher_factory"
	// IndexNodeID is the unique identifier for the dependency index Graft node.
	IndexNodeID graft.ID = "adapter.dependency_index"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 150 * time.Millisecond

// Factory creates a watcher. Watchers hold operating system resources, so
// they are only created by commands that watch.
type Factory func() (ports.Watcher, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				return NewWatcher(log)
			}, nil
		},
	})

	graft.Register(graft.Node[*DependencyIndex]{
		ID:        IndexNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*DependencyIndex, error) {
			return NewDependencyIndex(), nil
		},
	})
}
