package draft

import "sort"

// Step describes one page of the wizard.
type Step struct {
	Number      int    `json:"number"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Steps is the fixed wizard sequence shared by the progress UI and step routing.
var Steps = []Step{
	{Number: 1, Key: "client", Title: "Client", Description: "Sélection du client", Icon: "user"},
	{Number: 2, Key: "flights", Title: "Vols", Description: "Réservation des vols", Icon: "plane"},
	{Number: 3, Key: "accommodations", Title: "Hébergement", Description: "Choix de l'hébergement", Icon: "hotel"},
	{Number: 4, Key: "vehicles", Title: "Véhicule", Description: "Location de véhicule", Icon: "car"},
	{Number: 5, Key: "activities", Title: "Activités", Description: "Activités et excursions", Icon: "compass"},
	{Number: 6, Key: "summary", Title: "Récapitulatif", Description: "Vérification et validation", Icon: "check"},
}

// StepCount is the number of wizard steps.
var StepCount = len(Steps)

// StepState is a Step annotated for the progress UI.
type StepState struct {
	Step
	Visited   bool `json:"visited"`
	Current   bool `json:"current"`
	Reachable bool `json:"reachable"`
}

// Navigator gates movement through Steps by visitation history.
type Navigator struct {
	current    int
	visited    map[int]bool
	maxVisited int
}

// NewNavigator returns a navigator at step 1 with only step 1 visited.
func NewNavigator() Navigator {
	return Navigator{current: 1, visited: map[int]bool{1: true}, maxVisited: 1}
}

// Current returns the current step number.
func (n Navigator) Current() int { return n.current }

// MaxVisited returns the high-water mark of visited steps.
func (n Navigator) MaxVisited() int { return n.maxVisited }

// Visited returns the visited step numbers in ascending order.
func (n Navigator) Visited() []int {
	out := make([]int, 0, len(n.visited))
	for s := range n.visited {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// IsVisited reports whether step has been reached.
func (n Navigator) IsVisited(step int) bool { return n.visited[step] }

// CanGoTo reports whether step is reachable: visited, or the next unvisited step.
func (n Navigator) CanGoTo(step int) bool {
	if step < 1 || step > StepCount {
		return false
	}
	return n.visited[step] || step == n.maxVisited+1
}

// Next advances one step. It is a no-op at the last step.
func (n *Navigator) Next() bool {
	if n.current >= StepCount {
		return false
	}
	n.enter(n.current + 1)
	return true
}

// Prev goes back one step without un-visiting the step being left.
func (n *Navigator) Prev() bool {
	if n.current <= 1 {
		return false
	}
	n.current--
	return true
}

// GoTo jumps to step when reachable; otherwise the current step is unchanged.
func (n *Navigator) GoTo(step int) bool {
	if !n.CanGoTo(step) {
		return false
	}
	n.enter(step)
	return true
}

// States returns every step with its progress flags.
func (n Navigator) States() []StepState {
	out := make([]StepState, len(Steps))
	for i, s := range Steps {
		out[i] = StepState{
			Step:      s,
			Visited:   n.visited[s.Number],
			Current:   s.Number == n.current,
			Reachable: n.CanGoTo(s.Number),
		}
	}
	return out
}

func (n *Navigator) enter(step int) {
	n.current = step
	n.visited[step] = true
	if step > n.maxVisited {
		n.maxVisited = step
	}
}

// restoreNavigator rebuilds navigator state from possibly inconsistent input.
// The high-water mark is derived from the visited set only.
func restoreNavigator(current int, visited []int) Navigator {
	current = clampStep(current)
	n := Navigator{current: current, visited: make(map[int]bool)}
	for _, s := range visited {
		if s >= 1 && s <= StepCount {
			n.visited[s] = true
		}
	}
	if len(n.visited) == 0 {
		for s := 1; s <= current; s++ {
			n.visited[s] = true
		}
	}
	n.visited[1] = true
	n.visited[current] = true
	for s := range n.visited {
		if s > n.maxVisited {
			n.maxVisited = s
		}
	}
	return n
}

// clone returns a copy that shares no state with n.
func (n Navigator) clone() Navigator {
	c := Navigator{current: n.current, visited: make(map[int]bool, len(n.visited)), maxVisited: n.maxVisited}
	for s := range n.visited {
		c.visited[s] = true
	}
	return c
}

func allVisitedNavigator() Navigator {
	n := Navigator{current: 1, visited: make(map[int]bool), maxVisited: StepCount}
	for _, s := range Steps {
		n.visited[s.Number] = true
	}
	return n
}

func clampStep(step int) int {
	if step < 1 {
		return 1
	}
	if step > StepCount {
		return StepCount
	}
	return step
}
