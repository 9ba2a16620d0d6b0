package tune

// Grid is an ordered set of hyperparameter value lists. Candidates expands
// it into the cartesian product.
type Grid struct {
	names  []string
	values [][]float64
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// Add appends a parameter with its candidate values and returns the grid
// for chaining. Adding a parameter twice replaces its values.
func (g *Grid) Add(name string, values ...float64) *Grid {
	for i, existing := range g.names {
		if existing == name {
			g.values[i] = values
			return g
		}
	}
	g.names = append(g.names, name)
	g.values = append(g.values, values)
	return g
}

// Names returns the parameter names in insertion order.
func (g *Grid) Names() []string {
	return g.names
}

// Size returns the number of candidates the grid expands to.
func (g *Grid) Size() int {
	if len(g.names) == 0 {
		return 0
	}
	size := 1
	for _, vs := range g.values {
		size *= len(vs)
	}
	return size
}

// Candidate is one hyperparameter combination.
type Candidate map[string]float64

// Candidates expands the grid into every parameter combination. The order
// is deterministic: the last-added parameter varies fastest.
func (g *Grid) Candidates() []Candidate {
	size := g.Size()
	if size == 0 {
		return nil
	}

	out := make([]Candidate, 0, size)
	current := make([]int, len(g.names))

	for {
		c := make(Candidate, len(g.names))
		for i, name := range g.names {
			c[name] = g.values[i][current[i]]
		}
		out = append(out, c)

		// Odometer increment from the last parameter.
		pos := len(current) - 1
		for pos >= 0 {
			current[pos]++
			if current[pos] < len(g.values[pos]) {
				break
			}
			current[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}
