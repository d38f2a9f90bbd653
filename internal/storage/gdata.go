package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultAppName is the gdata application name used for the data directory.
const DefaultAppName = "starhop"

const (
	gdataObject   = "progress"
	gdataProperty = "state.yaml"
)

// GdataStore keeps progress as one YAML document in the user's application
// data directory. Every change is written through.
type GdataStore struct {
	*MemoryStore
	manager *gdata.Manager
}

var _ Store = (*GdataStore)(nil)

// OpenGdata opens (or creates) the data directory for appName and loads the
// stored document if there is one.
func OpenGdata(appName string) (*GdataStore, error) {
	if appName == "" {
		appName = DefaultAppName
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data for %s: %w", appName, err)
	}

	var doc document
	if manager.ObjectPropExists(gdataObject, gdataProperty) {
		data, err := manager.LoadObjectProp(gdataObject, gdataProperty)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot load progress: %w", err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("storage: cannot decode progress: %w", err)
		}
	}

	store := &GdataStore{manager: manager}
	store.MemoryStore = newMemoryStore(doc, store.save)
	return store, nil
}

func (s *GdataStore) save(doc document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storage: cannot encode progress: %w", err)
	}
	if err := s.manager.SaveObjectProp(gdataObject, gdataProperty, data); err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}
