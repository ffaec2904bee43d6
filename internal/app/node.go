package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xmlres/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/xmlres/internal/adapters/dom"       //nolint:depguard // Wired in app layer
	"go.trai.ch/xmlres/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/xmlres/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/xmlres/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/xmlres/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			dom.NodeID,
			telemetry.NodeID,
			watcher.FactoryNodeID,
			watcher.IndexNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.DocumentParser](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	index, err := graft.Dep[*watcher.DependencyIndex](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, parser, tracer, newWatcher, index), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, loader), nil
}
