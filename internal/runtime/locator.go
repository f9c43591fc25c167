package runtime

import "github.com/aretw0/routeops/pkg/domain"

// FindGraphOperations returns the descriptors triggered by reaching node,
// entering edgeEntered and exiting edgeExited, in that order. Any of the
// three may be nil.
func FindGraphOperations(node *domain.Node, edgeEntered, edgeExited *domain.Edge) []*domain.Operation {
	var ops []*domain.Operation
	if node != nil {
		ops = appendTriggered(ops, node.Operations, domain.TriggerNode)
	}
	if edgeEntered != nil {
		ops = appendTriggered(ops, edgeEntered.Operations, domain.TriggerOnEnter)
	}
	if edgeExited != nil {
		ops = appendTriggered(ops, edgeExited.Operations, domain.TriggerOnExit)
	}
	return ops
}

func appendTriggered(dst []*domain.Operation, src []domain.Operation, trigger domain.OperationTrigger) []*domain.Operation {
	for i := range src {
		if src[i].Trigger == trigger {
			dst = append(dst, &src[i])
		}
	}
	return dst
}
