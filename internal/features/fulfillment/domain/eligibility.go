package domain

// ActionOption is one entry of the action menu offered for an order. Label
// and Icon are presentation hints for the admin UI.
type ActionOption struct {
	Kind  ActionKind `json:"kind"`
	Label string     `json:"label"`
	Icon  string     `json:"icon"`
}

// EligibleActions computes the ordered list of administrative actions that
// are currently legal on the order. Rules apply independently, so several
// actions are usually offerable at once.
//
// Eligibility is a first enforcement point only: request constructors
// re-check the same preconditions at submission time, because the snapshot
// used here may be stale by then.
func EligibleActions(o *Order) []ActionOption {
	var actions []ActionOption

	if len(ValidTransitions(o.Status, o.DeliveryMethod)) > 0 {
		actions = append(actions, ActionOption{
			Kind:  ActionUpdateStatus,
			Label: "Update Status",
			Icon:  "edit",
		})
	}

	if o.DeliveryMethod == DeliveryMethodClickAndCollect &&
		o.Status != OrderStatusReadyForCollection && o.Status != OrderStatusCollected {
		actions = append(actions, ActionOption{
			Kind:  ActionMarkReady,
			Label: "Mark Ready for Collection",
			Icon:  "package",
		})
	}

	if o.DeliveryMethod == DeliveryMethodClickAndCollect && o.Status == OrderStatusReadyForCollection {
		actions = append(actions, ActionOption{
			Kind:  ActionMarkCollected,
			Label: "Mark Collected",
			Icon:  "user-check",
		})
	}

	if o.DeliveryMethod == DeliveryMethodHome &&
		(o.Status == OrderStatusConfirmed || o.Status == OrderStatusProcessing) {
		actions = append(actions, ActionOption{
			Kind:  ActionCreateShipment,
			Label: "Create Shipment",
			Icon:  "truck",
		})
	}

	if o.DeliveryMethod == DeliveryMethodHome && len(o.Shipments) > 0 && o.Status == OrderStatusShipped {
		actions = append(actions, ActionOption{
			Kind:  ActionMarkDelivered,
			Label: "Mark Delivered",
			Icon:  "check-circle",
		})
	}

	if o.Status != OrderStatusDelivered && o.Status != OrderStatusCancelled {
		actions = append(actions, ActionOption{
			Kind:  ActionCancelOrder,
			Label: "Cancel Order",
			Icon:  "x-circle",
		})
	}

	return actions
}
