package autograd

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Backward propagates d(loss)/d(node) from the 1×1 loss down to every
// parameter leaf reachable from it. Gradients are added to the leaves'
// existing buffers; clear them between steps.
func Backward(loss *Var) (err error) {
	defer errors.Recover(&err, "autograd.Backward")

	r, c := loss.Dims()
	if r != 1 || c != 1 {
		return errors.NewDimensionError("autograd.Backward", 1, r*c, 0)
	}
	if !loss.requiresGrad {
		return errors.New("autograd.Backward: loss does not require grad")
	}

	order := topoSort(loss)
	grads := map[*Var]*mat.Dense{loss: scalar(1)}

	// order lists children after their parents, so walk it backwards.
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		g, ok := grads[node]
		if !ok {
			continue
		}
		if node.leaf {
			node.grad.Add(node.grad, g)
			continue
		}
		for j, pg := range node.backward(g) {
			p := node.parents[j]
			if pg == nil || !p.requiresGrad {
				continue
			}
			if acc, seen := grads[p]; seen {
				acc.Add(acc, pg)
			} else {
				grads[p] = mat.DenseCopyOf(pg)
			}
		}
	}
	return nil
}

func topoSort(root *Var) []*Var {
	var order []*Var
	visited := make(map[*Var]bool)
	var visit func(v *Var)
	visit = func(v *Var) {
		if visited[v] || !v.requiresGrad {
			return
		}
		visited[v] = true
		for _, p := range v.parents {
			visit(p)
		}
		order = append(order, v)
	}
	visit(root)
	return order
}
