package ui

import (
	"gridpick/internal/domain"
	"gridpick/internal/eventbus"
	"gridpick/internal/selection"
)

// publishChanges forwards store changes to the bus until the returned
// function is called
func publishChanges(ctrl *selection.Controller[domain.Resource], bus eventbus.EventBus) func() {
	if bus == nil {
		return func() {}
	}
	return ctrl.Subscribe(func(c selection.Change) {
		switch c.Op {
		case selection.OpClear:
			bus.Publish(eventbus.SelectionClearedEvent{})
			return
		}

		added, removed := c.Diff()
		if len(added) == 0 && len(removed) == 0 && c.Before.AllSelected == c.After.AllSelected {
			return
		}

		gesture := string(c.Op)
		if c.Op == selection.OpApply {
			gesture = c.Kind.String()
		}
		bus.Publish(eventbus.SelectionChangedEvent{
			Gesture:     gesture,
			Added:       added,
			Removed:     removed,
			Total:       c.After.Count(),
			AllSelected: c.After.AllSelected,
		})
	})
}
