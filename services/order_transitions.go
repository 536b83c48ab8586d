package services

import "mealhub/entity"

// orderTransitions is the full order state machine as an adjacency list.
// delivered and cancelled are terminal; anything not listed is illegal,
// including self-transitions.
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderPending:   {entity.OrderAccepted, entity.OrderCancelled},
	entity.OrderAccepted:  {entity.OrderPreparing, entity.OrderCancelled},
	entity.OrderPreparing: {entity.OrderReady, entity.OrderCancelled},
	entity.OrderReady:     {entity.OrderPickedUp},
	entity.OrderPickedUp:  {entity.OrderDelivered},
	entity.OrderDelivered: {},
	entity.OrderCancelled: {},
}

func CanTransition(from, to entity.OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
