package floor

import (
	"fmt"

	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Menu manages menu templates.
type Menu struct {
	catalog  *files.Catalog
	notifier Notifier
	logger   logging.Logger
}

func NewMenu(d Deps) *Menu {
	return &Menu{catalog: d.Catalog, notifier: d.Notifier, logger: logging.OrNoop(d.Logger)}
}

func (m *Menu) Create(tmpl *restaurant.Item) error {
	if err := validTemplate(tmpl); err != nil {
		return err
	}
	if m.catalog.Menu.Exists(tmpl.Name) {
		return fmt.Errorf("%w: %s", ErrMenuItemExists, tmpl.Name)
	}
	m.catalog.Menu.Save(tmpl)
	m.notifier.NotifyChange(tmpl)
	m.logger.Info("menu item created", "name", tmpl.Name, "kind", tmpl.Kind)
	return nil
}

// Edit replaces an existing template. Items already ordered keep their copy.
func (m *Menu) Edit(tmpl *restaurant.Item) error {
	if err := validTemplate(tmpl); err != nil {
		return err
	}
	if !m.catalog.Menu.Exists(tmpl.Name) {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, tmpl.Name)
	}
	m.catalog.Menu.Save(tmpl)
	m.notifier.NotifyChange(tmpl)
	m.logger.Info("menu item edited", "name", tmpl.Name)
	return nil
}

func (m *Menu) Delete(name string) error {
	tmpl, ok := m.catalog.Menu.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, name)
	}
	m.catalog.Menu.Delete(name)
	m.notifier.NotifyChange(tmpl)
	m.logger.Info("menu item deleted", "name", name)
	return nil
}

func (m *Menu) Get(name string) (*restaurant.Item, error) {
	tmpl, ok := m.catalog.Menu.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, name)
	}
	return tmpl, nil
}

func (m *Menu) List() []*restaurant.Item {
	return m.catalog.Menu.List()
}

func validTemplate(tmpl *restaurant.Item) error {
	if tmpl == nil || !tmpl.IsTemplate() {
		return fmt.Errorf("%w: not a menu template", ErrInvalidName)
	}
	if err := store.ValidKey(tmpl.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return nil
}
