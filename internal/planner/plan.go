package planner

// WritePlan represents a plan to write the outputs of one conversion.
type WritePlan struct {
	// Operations is the ordered list of operations to execute
	Operations []Operation

	// Conflicts is a list of detected conflicts (empty if no conflicts)
	Conflicts []Conflict

	// Gated lists the (domain, locale) pairs whose trees were empty and
	// therefore produce no document
	Gated []Gated
}

// Operation represents a single file write.
type Operation struct {
	// Type is the operation type: "write" or "unchanged"
	Type string `json:"type"`

	// DestPath is the destination file path
	DestPath string `json:"path"`

	// Domain and Locale identify the document; both are empty for a table
	Domain string `json:"domain,omitempty"`
	Locale string `json:"locale,omitempty"`

	// Data is the rendered content
	Data []byte `json:"-"`
}

// Conflict represents a conflict detected during planning.
type Conflict struct {
	// Path is the destination where the conflict was detected
	Path string `json:"path"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason"`
}

// Gated is a (domain, locale) pair left out by output gating.
type Gated struct {
	Domain string `json:"domain"`
	Locale string `json:"locale"`
}

// Target is a rendered output handed to the planner.
type Target struct {
	Path   string
	Domain string
	Locale string
	Data   []byte
}

// Operation type constants
const (
	OpWrite     = "write"
	OpUnchanged = "unchanged"
)

// NewWritePlan creates a new empty WritePlan.
func NewWritePlan() *WritePlan {
	return &WritePlan{
		Operations: []Operation{},
		Conflicts:  []Conflict{},
		Gated:      []Gated{},
	}
}

// HasConflicts returns true if the plan has any conflicts.
func (p *WritePlan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddOperation adds an operation to the plan.
func (p *WritePlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddConflict adds a conflict to the plan.
func (p *WritePlan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// AddGated records a document held back by output gating.
func (p *WritePlan) AddGated(domain, locale string) {
	p.Gated = append(p.Gated, Gated{Domain: domain, Locale: locale})
}

// Writes returns the operations that change the filesystem.
func (p *WritePlan) Writes() []Operation {
	return p.ofType(OpWrite)
}

// Unchanged returns the operations skipped because the file already matches.
func (p *WritePlan) Unchanged() []Operation {
	return p.ofType(OpUnchanged)
}

func (p *WritePlan) ofType(typ string) []Operation {
	ops := []Operation{}
	for _, op := range p.Operations {
		if op.Type == typ {
			ops = append(ops, op)
		}
	}
	return ops
}
